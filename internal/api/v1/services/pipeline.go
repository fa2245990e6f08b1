package services

import (
	"context"
	"database/sql"
	"errors"

	"video2broll/internal/api/v1/dto"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/lock"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/repository"
)

// PipelineServiceImpl implements PipelineService by delegating to the
// pipeline stages. Stages that mutate a record run under the record
// lock so concurrent API calls cannot interleave writes.
type PipelineServiceImpl struct {
	dao         repository.MediaRecordDAO
	transcriber *pipeline.Transcriber
	extractor   *pipeline.KeywordExtractor
	matcher     *pipeline.StockMatcher
	packager    *pipeline.PackageBuilder
	locker      lock.RecordLocker
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	dao repository.MediaRecordDAO,
	transcriber *pipeline.Transcriber,
	extractor *pipeline.KeywordExtractor,
	matcher *pipeline.StockMatcher,
	packager *pipeline.PackageBuilder,
	locker lock.RecordLocker,
) PipelineService {
	return &PipelineServiceImpl{
		dao:         dao,
		transcriber: transcriber,
		extractor:   extractor,
		matcher:     matcher,
		packager:    packager,
		locker:      locker,
	}
}

// SubmitTranscription registers the record with the transcription
// service
func (s *PipelineServiceImpl) SubmitTranscription(ctx context.Context, mediaID string) (*dto.TranscriptionJobResponse, error) {
	release, err := s.locker.Acquire(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	defer release()

	jobID, err := s.transcriber.Submit(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptionJobResponse{Job: dto.JobRef{ID: jobID}}, nil
}

// PollTranscription probes job state and ingests the transcript when
// the job finished. Polling is idempotent, so it runs without the
// record lock.
func (s *PipelineServiceImpl) PollTranscription(ctx context.Context, jobID string) (*dto.TranscriptionStatusResponse, error) {
	result, err := s.transcriber.PollAndIngest(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptionStatusResponse{
		JobID:      jobID,
		State:      result.State,
		Transcript: result.Transcript,
	}, nil
}

// ExtractKeywords derives search terms from the stored transcript
func (s *PipelineServiceImpl) ExtractKeywords(ctx context.Context, mediaID string) (*dto.KeywordsResponse, error) {
	release, err := s.locker.Acquire(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	defer release()

	keywords, err := s.extractor.Extract(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	return &dto.KeywordsResponse{Keywords: keywords}, nil
}

// MatchClips searches stock footage for the record's keywords
func (s *PipelineServiceImpl) MatchClips(ctx context.Context, mediaID string, req *dto.MatchClipsRequest) (*dto.ClipListResponse, error) {
	release, err := s.locker.Acquire(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	defer release()

	clips, err := s.matcher.Match(ctx, mediaID, req.Keywords, req.AspectRatio)
	if err != nil {
		return nil, err
	}
	return &dto.ClipListResponse{Clips: dto.ToClipResponses(clips)}, nil
}

// ListClips returns the stored candidates and the package link once
// one exists
func (s *PipelineServiceImpl) ListClips(ctx context.Context, mediaID string) (*dto.ClipListResponse, error) {
	record, err := s.dao.GetByID(mediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media record", mediaID)
		}
		return nil, err
	}
	return &dto.ClipListResponse{
		Clips:       dto.ToClipResponses(record.CandidateClips),
		PackageLink: record.PackageLink,
	}, nil
}

// BuildPackage bundles the selected clips and publishes the archive
func (s *PipelineServiceImpl) BuildPackage(ctx context.Context, mediaID string, req *dto.PackageRequest) (*dto.PackageResponse, error) {
	release, err := s.locker.Acquire(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	defer release()

	link, err := s.packager.Build(ctx, mediaID, req.Clips)
	if err != nil {
		return nil, err
	}
	return &dto.PackageResponse{PackageLink: link}, nil
}
