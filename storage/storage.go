// Package storage abstracts where uploaded images live. The default backend
// writes to the local static directory; the S3 backend targets any
// S3-compatible object store (AWS, MinIO, or a hosted storage service).
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a requested object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Storage is the minimal contract the image upload flow needs.
type Storage interface {
	// Put uploads the object under key and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object under key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key without touching the backend.
	URL(key string) string
}
