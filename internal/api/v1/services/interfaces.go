package services

import (
	"context"
	"io"

	"video2broll/internal/api/v1/dto"
)

// MediaService manages media record lifecycle
type MediaService interface {
	Upload(ctx context.Context, owner, fileName string, content io.Reader) (*dto.MediaResponse, error)
	Get(ctx context.Context, id string) (*dto.MediaResponse, error)
	List(ctx context.Context, owner string) (*dto.MediaListResponse, error)
	Delete(ctx context.Context, id string) error
}

// PipelineService exposes the b-roll pipeline stages over the API
type PipelineService interface {
	SubmitTranscription(ctx context.Context, mediaID string) (*dto.TranscriptionJobResponse, error)
	PollTranscription(ctx context.Context, jobID string) (*dto.TranscriptionStatusResponse, error)
	ExtractKeywords(ctx context.Context, mediaID string) (*dto.KeywordsResponse, error)
	MatchClips(ctx context.Context, mediaID string, req *dto.MatchClipsRequest) (*dto.ClipListResponse, error)
	ListClips(ctx context.Context, mediaID string) (*dto.ClipListResponse, error)
	BuildPackage(ctx context.Context, mediaID string, req *dto.PackageRequest) (*dto.PackageResponse, error)
}
