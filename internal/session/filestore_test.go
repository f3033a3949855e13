package session

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "sessions.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	sess := &Session{
		LoginID:    "u1",
		UserName:   "Asha",
		StudentID:  "ST42",
		Branch:     "MB",
		IsLoggedIn: true,
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load("u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || loaded.StudentID != "ST42" || loaded.Branch != "MB" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if !loaded.Complete() {
		t.Fatalf("full session should be complete")
	}
}

func TestFileStoreMissingUser(t *testing.T) {
	store := newTestStore(t)
	loaded, err := store.Load("ghost")
	if err != nil || loaded != nil {
		t.Fatalf("missing user must read as logged out, got %+v, %v", loaded, err)
	}
}

func TestFileStoreCorruptFileReadsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	store := NewFileStore(path)
	loaded, err := store.Load("u1")
	if err != nil {
		t.Fatalf("corrupt storage must not surface an error, got %v", err)
	}
	if loaded != nil {
		t.Fatalf("corrupt storage must read as logged out, got %+v", loaded)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := newTestStore(t)
	_ = store.Save(&Session{LoginID: "u1", StudentID: "S", Branch: "B", IsLoggedIn: true})
	_ = store.MarkRead("u1", "n1")
	if err := store.Clear("u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if loaded, _ := store.Load("u1"); loaded != nil {
		t.Fatalf("session survived clear")
	}
	ids, err := store.ReadIDs("u1")
	if err != nil || len(ids) != 0 {
		t.Fatalf("read marks survived clear: %v %v", ids, err)
	}
}

func TestFileStoreReadMarks(t *testing.T) {
	store := newTestStore(t)
	if err := store.MarkRead("u1", "n1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := store.MarkRead("u1", "n1"); err != nil {
		t.Fatalf("MarkRead twice: %v", err)
	}
	ids, err := store.ReadIDs("u1")
	if err != nil {
		t.Fatalf("ReadIDs: %v", err)
	}
	if !ids["n1"] || len(ids) != 1 {
		t.Fatalf("ids = %v", ids)
	}
	other, _ := store.ReadIDs("u2")
	if len(other) != 0 {
		t.Fatalf("read marks leaked across users")
	}
}

func TestSessionComplete(t *testing.T) {
	cases := []struct {
		sess *Session
		want bool
	}{
		{nil, false},
		{&Session{StudentID: "S", Branch: "B", IsLoggedIn: true}, true},
		{&Session{StudentID: "", Branch: "B", IsLoggedIn: true}, false},
		{&Session{StudentID: "S", Branch: " ", IsLoggedIn: true}, false},
		{&Session{StudentID: "S", Branch: "B", IsLoggedIn: false}, false},
	}
	for i, tc := range cases {
		if got := tc.sess.Complete(); got != tc.want {
			t.Fatalf("case %d: Complete() = %v, want %v", i, got, tc.want)
		}
	}
}
