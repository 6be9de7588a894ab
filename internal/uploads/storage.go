package uploads

import (
	"context"
	"io"
	"time"
)

// StorageDriver defines how case documents are kept in binary storage
type StorageDriver interface {
	// Save writes the content under key
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get returns a ReadCloser to stream the document back and its content type.
	// A missing key yields drivers.ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the document; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// GenerateURL returns the URL clients use to fetch the document
	GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
