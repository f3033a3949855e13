package session

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresStore persists sessions and read marks in Postgres. Used when
// DATABASE_URL is configured.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Load(loginID string) (*Session, error) {
	var s Session
	err := p.db.Get(&s, `
		SELECT login_id, user_name, student_id, branch, is_logged_in
		FROM user_sessions
		WHERE login_id = $1`, loginID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !s.IsLoggedIn {
		return nil, nil
	}
	return &s, nil
}

func (p *PostgresStore) Save(s *Session) error {
	_, err := p.db.Exec(`
		INSERT INTO user_sessions (login_id, user_name, student_id, branch, is_logged_in, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (login_id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			student_id = EXCLUDED.student_id,
			branch = EXCLUDED.branch,
			is_logged_in = EXCLUDED.is_logged_in,
			updated_at = NOW()`,
		s.LoginID, s.UserName, s.StudentID, s.Branch, s.IsLoggedIn)
	return err
}

func (p *PostgresStore) Clear(loginID string) error {
	if _, err := p.db.Exec(`DELETE FROM notification_reads WHERE login_id = $1`, loginID); err != nil {
		return err
	}
	_, err := p.db.Exec(`DELETE FROM user_sessions WHERE login_id = $1`, loginID)
	return err
}

func (p *PostgresStore) MarkRead(loginID, notificationID string) error {
	_, err := p.db.Exec(`
		INSERT INTO notification_reads (login_id, notification_id, read_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (login_id, notification_id) DO NOTHING`,
		loginID, notificationID)
	return err
}

func (p *PostgresStore) ReadIDs(loginID string) (map[string]bool, error) {
	var ids []string
	if err := p.db.Select(&ids, `
		SELECT notification_id FROM notification_reads WHERE login_id = $1`, loginID); err != nil {
		return nil, err
	}
	read := make(map[string]bool, len(ids))
	for _, id := range ids {
		read[id] = true
	}
	return read, nil
}
