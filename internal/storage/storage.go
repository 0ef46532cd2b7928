package storage

import (
	"context"
	"io"
)

// BlobStore persists opaque uploaded blobs and returns a stable reference
// (path or URL) for each saved object. References are opaque to the rest of
// the system: they are stored and served back, never interpreted.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
