package storage

import (
	"context"
	"io"
)

// Uploader writes a blob to durable storage and returns its locator.
// Callers generate a fresh globally-unique object name per upload, so
// overwrite detection is not a concern here.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (locator string, err error)
}
