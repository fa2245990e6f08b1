package dto

import (
	"time"

	"video2broll/internal/app/model"
)

// MediaResponse represents a media record in API responses
type MediaResponse struct {
	ID                 string    `json:"id"`
	Owner              string    `json:"owner,omitempty"`
	FileName           string    `json:"file_name"`
	SourceLocation     string    `json:"source_location"`
	TranscriptionJobID string    `json:"transcription_job_id,omitempty"`
	Transcript         string    `json:"transcript,omitempty"`
	Keywords           []string  `json:"keywords,omitempty"`
	PackageLink        string    `json:"package_link,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToMediaResponse converts a model to response DTO
func ToMediaResponse(record *model.MediaRecord) MediaResponse {
	return MediaResponse{
		ID:                 record.ID,
		Owner:              record.Owner,
		FileName:           record.FileName,
		SourceLocation:     record.SourceLocation,
		TranscriptionJobID: record.TranscriptionJobID,
		Transcript:         record.Transcript,
		Keywords:           record.Keywords,
		PackageLink:        record.PackageLink,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}

// ListMediaQuery represents query parameters for listing media records
type ListMediaQuery struct {
	Owner string `form:"owner"`
}

// MediaListResponse wraps a list of media records
type MediaListResponse struct {
	Media []MediaResponse `json:"media"`
	Total int             `json:"total"`
}
