package repository

import (
	"video2broll/internal/app/model"
)

// MediaRecordDAO is the keyed mapping from record id to MediaRecord that
// the pipeline mutates stage by stage. Stage setters are wholesale,
// last-writer-wins field replacements.
type MediaRecordDAO interface {
	Close() error

	Create(record *model.MediaRecord) error

	GetByID(id string) (*model.MediaRecord, error)

	// GetByJobID resolves the record whose transcription job handle
	// matches, used by the poll-and-ingest re-entry point.
	GetByJobID(jobID string) (*model.MediaRecord, error)

	ListByOwner(owner string) ([]model.MediaRecord, error)

	SetTranscriptionJob(id string, jobID string) error

	// SetTranscript writes the normalized transcript keyed by job id so
	// repeated ingestion of the same terminal job stays idempotent.
	SetTranscript(jobID string, transcript string) error

	SetKeywords(id string, keywords []string) error

	SetCandidateClips(id string, clips []model.ClipCandidate) error

	SetPackageLink(id string, link string) error

	Delete(id string) error
}
