// Package highscore persists the single best score as a plain-text integer.
// Persistence is best-effort: reads never fail and write failures are
// reported to the caller without affecting gameplay.
package highscore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Store is the persistence capability injected into the game.
type Store interface {
	// Load returns the stored high score, or 0 if it is missing or corrupt.
	Load() int

	// Save overwrites the stored high score.
	Save(value int) error
}

// FileStore keeps the high score in a text file holding a single decimal
// integer with no delimiters or metadata.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
// A leading ~ is expanded to the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored value. A missing file, unreadable content, or a
// negative number all yield 0.
func (s *FileStore) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Save writes value to the file, creating parent directories as needed.
func (s *FileStore) Save(value int) error {
	if value < 0 {
		return fmt.Errorf("highscore: refusing to save negative score %d", value)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(value)), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", s.path, err)
	}
	return nil
}

// Synced wraps a Store for use by several concurrent sessions.
// Save never lowers the stored value, so a session holding a stale
// in-memory high score cannot overwrite a better one.
type Synced struct {
	mu    sync.Mutex
	inner Store
	best  int
}

// NewSynced wraps inner, reading its current value once.
func NewSynced(inner Store) *Synced {
	return &Synced{inner: inner, best: inner.Load()}
}

// Load returns the best value seen by this process.
func (s *Synced) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Save persists value if it beats the current best.
func (s *Synced) Save(value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value <= s.best {
		return nil
	}
	s.best = value
	return s.inner.Save(value)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("highscore: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
