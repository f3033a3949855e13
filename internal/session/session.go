// Package session stores the per-user login context the resource layer
// depends on. A session missing its student id or branch is treated as
// incomplete and no upstream call is made on its behalf.
package session

import "strings"

// Session mirrors the app's stored user data.
type Session struct {
	LoginID    string `json:"loginId" db:"login_id"`
	UserName   string `json:"userName" db:"user_name"`
	StudentID  string `json:"seqStudentId" db:"student_id"`
	Branch     string `json:"branch" db:"branch"`
	IsLoggedIn bool   `json:"isLoggedIn" db:"is_logged_in"`
}

// Complete reports whether the session carries everything an upstream call
// needs. Both student id and branch must be present.
func (s *Session) Complete() bool {
	return s != nil &&
		s.IsLoggedIn &&
		strings.TrimSpace(s.StudentID) != "" &&
		strings.TrimSpace(s.Branch) != ""
}

// Store persists sessions and per-user notification read marks. Load returns
// (nil, nil) when no usable session exists, including when stored data fails
// to parse; a corrupt record must read as logged-out, never as a partial
// session.
type Store interface {
	Load(loginID string) (*Session, error)
	Save(s *Session) error
	Clear(loginID string) error
	MarkRead(loginID, notificationID string) error
	ReadIDs(loginID string) (map[string]bool, error)
}
