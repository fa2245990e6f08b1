package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "video2broll/internal/app/errors"
)

// MinIOConfig represents configuration for MinIO-backed storage.
type MinIOConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	BucketName string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	// LinkExpiry bounds presigned link lifetime. Zero means 7 days, the
	// longest S3-compatible presign window.
	LinkExpiry time.Duration `yaml:"link_expiry"`
}

// MinIOStorage implements ObjectStorage on a MinIO (or any
// S3-compatible) bucket, for self-hosted deployments. Shared links are
// presigned GET URLs.
type MinIOStorage struct {
	client *minio.Client
	config MinIOConfig
}

// NewMinIOStorage connects to MinIO and ensures the bucket exists.
func NewMinIOStorage(ctx context.Context, config MinIOConfig) (*MinIOStorage, error) {
	if config.LinkExpiry == 0 {
		config.LinkExpiry = 7 * 24 * time.Hour
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.BucketName)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("object storage", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, apperrors.UpstreamUnavailable("object storage", err)
		}
	}

	return &MinIOStorage{client: client, config: config}, nil
}

func (s *MinIOStorage) Put(ctx context.Context, path string, content io.Reader) (string, error) {
	objectName := strings.TrimPrefix(path, "/")
	_, err := s.client.PutObject(ctx, s.config.BucketName, objectName, content, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", mapMinIOError(err)
	}
	return path, nil
}

// mapMinIOError distinguishes definitive provider rejections (the
// server answered with an error status) from transport failures.
func mapMinIOError(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.StatusCode != 0 {
		return apperrors.UpstreamRejected("object storage", resp.StatusCode, resp.Code+": "+resp.Message)
	}
	return apperrors.UpstreamUnavailable("object storage", err)
}

func (s *MinIOStorage) CreateOrGetSharedLink(ctx context.Context, path string) (string, error) {
	objectName := strings.TrimPrefix(path, "/")
	// The disposition must be part of the presign request: V4 signs all
	// query parameters, so it cannot be appended to the link afterwards.
	params := make(url.Values)
	params.Set("response-content-disposition", "attachment")
	presigned, err := s.client.PresignedGetObject(ctx, s.config.BucketName, objectName, s.config.LinkExpiry, params)
	if err != nil {
		return "", apperrors.UpstreamUnavailable("object storage", err)
	}
	return presigned.String(), nil
}

func (s *MinIOStorage) Delete(ctx context.Context, path string) error {
	objectName := strings.TrimPrefix(path, "/")
	err := s.client.RemoveObject(ctx, s.config.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return mapMinIOError(err)
	}
	return nil
}

// DirectDownloadLink is the identity here: presigned links already
// carry the attachment disposition, and mutating a signed URL breaks
// its signature.
func (s *MinIOStorage) DirectDownloadLink(link string) string {
	return link
}

var _ ObjectStorage = (*MinIOStorage)(nil)
