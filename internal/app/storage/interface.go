package storage

import (
	"context"
	"io"
)

// ObjectStorage is the durable store for uploaded sources and published
// archives. Implementations must guarantee that DirectDownloadLink
// yields a URL that downloads the object rather than previewing it.
type ObjectStorage interface {
	// Put writes content at path and returns the stored location.
	Put(ctx context.Context, path string, content io.Reader) (string, error)

	// CreateOrGetSharedLink returns a shareable URL for path, reusing an
	// existing link when the backend reports one already exists.
	CreateOrGetSharedLink(ctx context.Context, path string) (string, error)

	// Delete removes path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// DirectDownloadLink rewrites a shared link into its direct-download
	// variant.
	DirectDownloadLink(link string) string
}
