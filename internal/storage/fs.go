package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	// DirPerm is the mode for created attachment directories.
	DirPerm = 0700
)

// Store writes export artifacts under a single output directory root.
type Store struct {
	root string
}

// New creates a Store rooted at dir. The directory must already exist;
// creating it is the caller's responsibility (the CLI treats a missing
// output directory as a configuration error, not something to fix up).
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat output dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output path is not a directory: %s", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute output directory path.
func (s *Store) Root() string {
	return s.root
}

// Exported reports whether path already holds a completed artifact.
// Zero-length files do not count; an aborted earlier run may have left one.
func (s *Store) Exported(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// EnsureDir creates dir if absent. Safe to call concurrently for the
// same directory; "already exists" is not an error.
func (s *Store) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// Write persists data to path atomically.
func (s *Store) Write(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
