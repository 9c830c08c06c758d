// Package storage holds the raw-document archive abstraction. Scanned
// text is archived to an S3-compatible object store alongside the
// corpus row; implementations stream and never touch local disk.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo contains basic information about an archived object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Archive is the object-store client used to keep the raw submitted
// document text. Keys are derived from document IDs by the service layer.
type Archive interface {
	// Put stores an object under the given key using streaming I/O.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
