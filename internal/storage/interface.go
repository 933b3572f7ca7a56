package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded listing images. Keys are opaque names chosen
// by the caller; the returned URL is what clients render.
type ImageStore interface {
	// Save writes the content under key and returns its public URL.
	Save(ctx context.Context, key string, reader io.Reader) (string, error)

	// Delete removes the file. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Open returns the stored content for serving.
	Open(key string) (io.ReadCloser, error)
}
