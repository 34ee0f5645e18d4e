package fileserver

import (
	"os"
	"path/filepath"
	"sync"

	"ringquorum/internal/logger"
)

// Store is the per-server local disk replica: file contents under
// storagePath, and an in-memory version table that is the source of
// truth for which versions this server has actually observed.
type Store struct {
	lgr         logger.Logger
	storagePath string

	mu       sync.Mutex
	versions map[string]int64
}

// NewStore creates storagePath if needed and returns an empty Store
// rooted there.
func NewStore(storagePath string, lgr logger.Logger) (*Store, error) {
	if lgr == nil {
		lgr = logger.NopLogger{}
	}
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		lgr:         lgr,
		storagePath: storagePath,
		versions:    make(map[string]int64),
	}, nil
}

func (s *Store) path(file string) string {
	return filepath.Join(s.storagePath, filepath.Base(file))
}

// GetVersion returns the version this server has for file, or 0 if it
// has never seen an Update for it.
func (s *Store) GetVersion(file string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[file]
}

// Update writes content to disk and records version as the file's
// current version, regardless of what it was before: the coordinator
// is the one enforcing monotonicity across the write quorum.
func (s *Store) Update(file string, version int64, content string) error {
	if err := os.WriteFile(s.path(file), []byte(content), 0o644); err != nil {
		return err
	}
	s.mu.Lock()
	s.versions[file] = version
	s.mu.Unlock()
	s.lgr.Debug("update: wrote file", logger.F("file", file), logger.F("version", version))
	return nil
}

// Fetch returns the on-disk contents of file. It fails with
// ErrFileNotFound if this server has never recorded a version for it,
// even if a stale file happens to exist on disk.
func (s *Store) Fetch(file string) (string, error) {
	s.mu.Lock()
	_, known := s.versions[file]
	s.mu.Unlock()
	if !known {
		return "", ErrFileNotFound
	}
	data, err := os.ReadFile(s.path(file))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileVersion is a (name, version) pair as recorded locally.
type FileVersion struct {
	Name    string
	Version int64
}

// GetFiles returns every file this server has a recorded version for.
func (s *Store) GetFiles() []FileVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FileVersion, 0, len(s.versions))
	for name, v := range s.versions {
		out = append(out, FileVersion{Name: name, Version: v})
	}
	return out
}
