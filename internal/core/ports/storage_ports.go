package ports

import (
	"context"
	"io"
)

// FileStore persists an uploaded blob and returns its stable public URL.
// Failures are surfaced as domain.ErrUpload; uploads are never retried here.
type FileStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}
