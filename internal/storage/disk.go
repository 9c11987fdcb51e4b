package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes objects under a root directory. It stands in for the
// cloud storage provider in development and tests.
type DiskStore struct {
	root string
}

// NewDiskStore ensures the root directory exists.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Put implements ObjectStore.
func (s *DiskStore) Put(ctx context.Context, key string, contents io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path := filepath.Join(s.root, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	written, err := io.Copy(f, contents)
	if err != nil {
		return 0, err
	}
	return written, nil
}
