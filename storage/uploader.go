package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader is the object-store boundary: screenshots and team logos live
// behind it, addressed by opaque keys. Delete is best-effort; archival
// tolerates partial failure.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string

	// KeyFromPublicURL inverts GetPublicURL. It returns "" for URLs outside
	// this store's public base (including the sentinel literals that legacy
	// rows keep in screenshot_url).
	KeyFromPublicURL(url string) string
}
