package dto

import (
	"video2broll/internal/api/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
)

// JobRef identifies a transcription job
type JobRef struct {
	ID string `json:"id"`
}

// TranscriptionJobResponse is returned by the transcription submit endpoint
type TranscriptionJobResponse struct {
	Job JobRef `json:"job"`
}

// TranscriptionStatusResponse is returned by the transcription poll endpoint
type TranscriptionStatusResponse struct {
	JobID      string `json:"job_id"`
	State      string `json:"state"`
	Transcript string `json:"transcript,omitempty"`
}

// KeywordsResponse carries the extracted keyword list
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// MatchClipsRequest represents the request to search stock footage
type MatchClipsRequest struct {
	// Keywords overrides the stored keyword list when present.
	Keywords    []string `json:"keywords,omitempty"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
}

// Validate performs domain-specific validation
func (r *MatchClipsRequest) Validate() error {
	switch r.AspectRatio {
	case "", "16:9", "4:3", "9:16", "3:4", "1:1":
		return nil
	default:
		return errors.NewValidationError("Invalid clip search request", map[string]string{
			"aspect_ratio": "must be one of 16:9, 4:3, 9:16, 3:4, 1:1",
		})
	}
}

// ClipCandidateResponse represents one stock footage candidate
type ClipCandidateResponse struct {
	Keyword            string   `json:"keyword"`
	SourceID           int64    `json:"source_id"`
	PreviewURL         string   `json:"preview_url"`
	DurationSeconds    int      `json:"duration_seconds"`
	ThumbnailURL       string   `json:"thumbnail_url,omitempty"`
	DownloadCandidates []string `json:"download_candidates"`
}

// ClipListResponse carries stored candidates plus the package link once
// one exists
type ClipListResponse struct {
	Clips       []ClipCandidateResponse `json:"clips"`
	PackageLink string                  `json:"package_link,omitempty"`
}

// ToClipResponses converts model candidates to response DTOs
func ToClipResponses(clips []model.ClipCandidate) []ClipCandidateResponse {
	responses := make([]ClipCandidateResponse, len(clips))
	for i, clip := range clips {
		responses[i] = ClipCandidateResponse{
			Keyword:            clip.Keyword,
			SourceID:           clip.SourceID,
			PreviewURL:         clip.PreviewURL,
			DurationSeconds:    clip.DurationSeconds,
			ThumbnailURL:       clip.ThumbnailURL,
			DownloadCandidates: clip.DownloadCandidates,
		}
	}
	return responses
}

// PackageRequest represents the request to build the clip archive
type PackageRequest struct {
	Clips []pipeline.ClipSource `json:"clips" binding:"required"`
}

// Validate performs domain-specific validation
func (r *PackageRequest) Validate() error {
	if len(r.Clips) == 0 {
		return errors.NewValidationError("Invalid package request", map[string]string{
			"clips": "is required",
		})
	}
	return nil
}

// PackageResponse carries the published archive link
type PackageResponse struct {
	PackageLink string `json:"package_link"`
}
