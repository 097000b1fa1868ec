// Package file implements snapshot.Slot on a directory, one file per key.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"todo/internal/snapshot"
)

// Extension is appended to the key to form the file name.
const Extension = ".json"

// Slot stores each key in <Dir>/<key>.json.
type Slot struct {
	dir string
}

// New creates a Slot rooted at dir. The directory is created on the
// first Put.
func New(dir string) *Slot {
	return &Slot{dir: dir}
}

// Path returns the file that holds key.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.dir, key+Extension)
}

// Get implements snapshot.Slot.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put implements snapshot.Slot. The value is written to a temporary file
// in the same directory and renamed over the old one.
func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.Path(key))
}

// validateKey rejects keys that would escape the directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid snapshot key: %q", key)
	}
	return nil
}
