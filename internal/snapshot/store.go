package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSnapshot is returned when the store holds no snapshot yet. Callers
// that need grounding context must refuse to proceed on it rather than
// query the model with nothing.
var ErrNoSnapshot = errors.New("no snapshot available")

// Store is an append-only collection of dated snapshot documents, one UTF-8
// text file per collection date.
type Store struct {
	dir string
}

// NewStore creates the snapshot directory if needed and returns a Store
// rooted at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory snapshots are written under.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for a given collection date.
func (s *Store) Path(date string) string {
	return filepath.Join(s.dir, date+".txt")
}

// Write persists the snapshot document for its collection date, replacing
// any prior document for the same date. The write goes through a temp file
// and a rename so a crash mid-write never leaves a half-written snapshot
// observable.
func (s *Store) Write(snap *Snapshot) error {
	path := s.Path(snap.Date)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(snap.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot document as an opaque text blob
// along with its collection date. Returns ErrNoSnapshot when the store is
// empty. Dated filenames sort lexicographically in chronological order, so
// the newest file is the last one.
func (s *Store) Latest() (text, date string, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", ErrNoSnapshot
		}
		return "", "", err
	}

	var latest string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", "", ErrNoSnapshot
	}

	data, err := os.ReadFile(filepath.Join(s.dir, latest))
	if err != nil {
		return "", "", fmt.Errorf("failed to read snapshot: %w", err)
	}

	return string(data), strings.TrimSuffix(latest, ".txt"), nil
}
