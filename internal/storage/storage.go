package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store writes output files into one directory
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
// An empty dir means the current directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Store{
		dir: dir,
	}, nil
}

// Dir returns the directory files are written to
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of name inside the store
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// WriteAtomic streams fn's output into name. The content goes to a temporary file in
// the same directory that is renamed over name only after fn, flush, sync and close all
// succeed, so readers never see a partial file. On failure the temporary file is removed.
func (s *Store) WriteAtomic(name string, fn func(w io.Writer) error) (path string, err error) {
	path = s.Path(name)

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()           // nolint:errcheck
			os.Remove(tmp.Name()) // nolint:errcheck
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = fn(bw); err != nil {
		return "", err
	}
	if err = bw.Flush(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming into %s: %w", path, err)
	}

	return path, nil
}
