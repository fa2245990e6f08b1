package storage

import (
	"context"
	"io"

	"video2broll/internal/app/api/dropbox"
)

// DropboxStorage adapts the Dropbox client to the ObjectStorage
// contract.
type DropboxStorage struct {
	client *dropbox.Client
}

// NewDropboxStorage creates Dropbox-backed object storage.
func NewDropboxStorage(client *dropbox.Client) *DropboxStorage {
	return &DropboxStorage{client: client}
}

func (s *DropboxStorage) Put(ctx context.Context, path string, content io.Reader) (string, error) {
	return s.client.Upload(ctx, path, content)
}

func (s *DropboxStorage) CreateOrGetSharedLink(ctx context.Context, path string) (string, error) {
	return s.client.CreateOrGetSharedLink(ctx, path)
}

func (s *DropboxStorage) Delete(ctx context.Context, path string) error {
	return s.client.Delete(ctx, path)
}

func (s *DropboxStorage) DirectDownloadLink(link string) string {
	return dropbox.ForceDirectDownload(link)
}

var _ ObjectStorage = (*DropboxStorage)(nil)
