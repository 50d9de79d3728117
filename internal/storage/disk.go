// Package storage persists uploaded media bytes for the reference media
// service and maps stored files onto public URLs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage defines the interface for blob storage operations
//
//go:generate mockgen -source=disk.go -destination=../mocks/storage.go -package=mocks -mock_names=Storage=MockStorage
type Storage interface {
	// Save writes the bytes under the given relative path
	Save(path string, data []byte) error
	// Remove deletes the stored file; removing a missing file is a no-op
	Remove(path string) error
	// URL maps a storage path onto the public URL it is served at
	URL(path string) string
}

// Disk implements Storage on the local filesystem
type Disk struct {
	root    string
	baseURL string
}

// NewDisk creates a disk storage rooted at root, served under baseURL
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Disk{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the storage root directory
func (d *Disk) Root() string {
	return d.root
}

// Save writes the bytes under the given relative path
func (d *Disk) Save(path string, data []byte) error {
	full := filepath.Join(d.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Remove deletes the stored file
func (d *Disk) Remove(path string) error {
	full := filepath.Join(d.root, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// URL maps a storage path onto the public URL it is served at
func (d *Disk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimPrefix(path, "/")
}
