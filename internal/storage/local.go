package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDir is used when no storage directory is configured
const DefaultDir = "files"

// LocalStore keeps artifacts as files in a single directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed and returns a store rooted there
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the store's root directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to dir/name, replacing any existing file
func (s *LocalStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return FilesPrefix + name, nil
}

// Get reads dir/name
func (s *LocalStore) Get(_ context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
