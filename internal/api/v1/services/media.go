package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"video2broll/internal/api/v1/dto"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/repository"
	"video2broll/internal/app/storage"
)

// MediaServiceImpl implements MediaService on the record store and
// object storage.
type MediaServiceImpl struct {
	dao     repository.MediaRecordDAO
	storage storage.ObjectStorage
	logger  *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(dao repository.MediaRecordDAO, store storage.ObjectStorage, logger *slog.Logger) MediaService {
	return &MediaServiceImpl{dao: dao, storage: store, logger: logger}
}

// Upload stores the source file and creates its media record. The
// record's source location is a direct-download link so the
// transcription service can fetch it without auth.
func (s *MediaServiceImpl) Upload(ctx context.Context, owner, fileName string, content io.Reader) (*dto.MediaResponse, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, apperrors.InvalidArgument("file name is required")
	}

	id := uuid.NewString()
	storagePath := fmt.Sprintf("/media_uploads/%s_%s", id, sanitizeFileName(fileName))
	if _, err := s.storage.Put(ctx, storagePath, content); err != nil {
		return nil, err
	}
	link, err := s.storage.CreateOrGetSharedLink(ctx, storagePath)
	if err != nil {
		return nil, err
	}

	record := &model.MediaRecord{
		ID:             id,
		Owner:          owner,
		FileName:       fileName,
		SourceLocation: s.storage.DirectDownloadLink(link),
		StoragePath:    storagePath,
	}
	if err := s.dao.Create(record); err != nil {
		return nil, err
	}

	s.logger.Info("media uploaded",
		"media_id", record.ID,
		"owner", owner,
		"file_name", fileName,
	)
	response := dto.ToMediaResponse(record)
	return &response, nil
}

// Get retrieves a media record by ID
func (s *MediaServiceImpl) Get(ctx context.Context, id string) (*dto.MediaResponse, error) {
	record, err := s.dao.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media record", id)
		}
		return nil, err
	}
	response := dto.ToMediaResponse(record)
	return &response, nil
}

// List retrieves media records for an owner
func (s *MediaServiceImpl) List(ctx context.Context, owner string) (*dto.MediaListResponse, error) {
	records, err := s.dao.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.MediaResponse, len(records))
	for i := range records {
		responses[i] = dto.ToMediaResponse(&records[i])
	}
	return &dto.MediaListResponse{Media: responses, Total: len(responses)}, nil
}

// Delete removes the record and best-effort deletes its stored
// objects. Object deletion failures are logged, not surfaced; the
// record removal is what the caller observes.
func (s *MediaServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.dao.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("media record", id)
		}
		return err
	}

	if record.StoragePath != "" {
		if err := s.storage.Delete(ctx, record.StoragePath); err != nil {
			s.logger.Warn("failed to delete source object",
				"media_id", id,
				"path", record.StoragePath,
				"error", err,
			)
		}
	}
	if record.PackageLink != "" {
		archivePath := pipeline.ArchivePathFor(record.FileName, record.ID)
		if err := s.storage.Delete(ctx, archivePath); err != nil {
			s.logger.Warn("failed to delete package archive",
				"media_id", id,
				"path", archivePath,
				"error", err,
			)
		}
	}

	if err := s.dao.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("media record", id)
		}
		return err
	}
	s.logger.Info("media deleted", "media_id", id)
	return nil
}

// sanitizeFileName keeps storage paths flat and predictable.
func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
