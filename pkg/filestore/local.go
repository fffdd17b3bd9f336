// Package filestore persists generated report artifacts on the local filesystem.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store abstracts artifact persistence so services and workers stay
// independent of the storage backend.
type Store interface {
	Save(name string, data []byte) (string, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// Local stores artifacts under a root directory on disk.
type Local struct {
	root string
}

// NewLocal creates the root directory when missing and returns the store.
func NewLocal(root string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("filestore root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create filestore root: %w", err)
	}
	return &Local{root: root}, nil
}

// Save writes the artifact and returns the path to hand back later to Open
// and Remove. Name must be a bare file name, not a path.
func (s *Local) Save(name string, data []byte) (string, error) {
	if filepath.Base(name) != name || name == "." || name == "" {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

// Open returns a reader over a previously saved artifact.
func (s *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Remove deletes the artifact; a missing file is not an error.
func (s *Local) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
