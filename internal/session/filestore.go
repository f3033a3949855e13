package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps sessions and read marks in a single JSON key-value file,
// written atomically. It is the default backend when no database is
// configured and the fixture used by tests.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileState struct {
	Sessions map[string]*Session        `json:"sessions"`
	ReadIDs  map[string]map[string]bool `json:"readIds"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(loginID string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.read()
	s, ok := state.Sessions[loginID]
	if !ok || !s.IsLoggedIn {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *FileStore) Save(s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.read()
	copied := *s
	state.Sessions[s.LoginID] = &copied
	return f.write(state)
}

func (f *FileStore) Clear(loginID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.read()
	delete(state.Sessions, loginID)
	delete(state.ReadIDs, loginID)
	return f.write(state)
}

func (f *FileStore) MarkRead(loginID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.read()
	if state.ReadIDs[loginID] == nil {
		state.ReadIDs[loginID] = make(map[string]bool)
	}
	state.ReadIDs[loginID][notificationID] = true
	return f.write(state)
}

func (f *FileStore) ReadIDs(loginID string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.read()
	ids := make(map[string]bool, len(state.ReadIDs[loginID]))
	for id := range state.ReadIDs[loginID] {
		ids[id] = true
	}
	return ids, nil
}

// read loads the state file. Any read or parse failure yields an empty
// state: corrupt storage means logged-out, not an error surfaced upward.
func (f *FileStore) read() fileState {
	state := fileState{
		Sessions: make(map[string]*Session),
		ReadIDs:  make(map[string]map[string]bool),
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return state
	}
	var parsed fileState
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return state
	}
	if parsed.Sessions != nil {
		state.Sessions = parsed.Sessions
	}
	if parsed.ReadIDs != nil {
		state.ReadIDs = parsed.ReadIDs
	}
	return state
}

func (f *FileStore) write(state fileState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
