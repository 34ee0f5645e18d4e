package fileserver

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "files"), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreFetchUnknownFileFails(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Fetch("missing.txt"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestStoreGetVersionUnknownFileIsZero(t *testing.T) {
	s := newTestStore(t)
	if v := s.GetVersion("missing.txt"); v != 0 {
		t.Fatalf("expected version 0, got %d", v)
	}
}

func TestStoreUpdateThenFetchRoundTrips(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update("a.txt", 1, "hello"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	content, err := s.Fetch("a.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if content != "hello" {
		t.Fatalf("expected %q, got %q", "hello", content)
	}
	if v := s.GetVersion("a.txt"); v != 1 {
		t.Fatalf("expected version 1, got %d", v)
	}
}

func TestStoreUpdateOverwritesPreviousVersion(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update("a.txt", 1, "v1"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Update("a.txt", 2, "v2"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	content, err := s.Fetch("a.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if content != "v2" {
		t.Fatalf("expected %q, got %q", "v2", content)
	}
	if v := s.GetVersion("a.txt"); v != 2 {
		t.Fatalf("expected version 2, got %d", v)
	}
}

func TestStoreGetFilesListsEverythingUpdated(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update("a.txt", 1, "a"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Update("b.txt", 3, "b"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	files := s.GetFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	versions := make(map[string]int64, len(files))
	for _, f := range files {
		versions[f.Name] = f.Version
	}
	if versions["a.txt"] != 1 || versions["b.txt"] != 3 {
		t.Fatalf("unexpected versions: %+v", versions)
	}
}

func TestStorePathRejectsDirectoryTraversal(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update("../escape.txt", 1, "x"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := s.path("../escape.txt")
	want := filepath.Join(s.storagePath, "escape.txt")
	if got != want {
		t.Fatalf("expected sanitized path %q, got %q", want, got)
	}
}
