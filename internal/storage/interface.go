package storage

import (
	"context"
	"io"
)

// ArtifactStore is the narrow contract the reporting path depends on: put a
// named binary blob, get back a retrievable URL. Backends range from the
// local filesystem to cloud buckets.
type ArtifactStore interface {
	// Put stores the blob under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Open returns a reader for a stored blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks whether a blob is present and returns its size.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes a blob.
	Delete(ctx context.Context, key string) error
}
