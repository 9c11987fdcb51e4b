// Package storage abstracts the object storage collaborator.
package storage

import (
	"context"
	"io"
)

// ObjectStore writes uploaded blobs. Transformation pipelines (resize,
// compress) are the collaborator's concern.
type ObjectStore interface {
	Put(ctx context.Context, key string, contents io.Reader) (int64, error)
}
