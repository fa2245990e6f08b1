package pipeline

import (
	"context"

	"video2broll/internal/app/api/pexels"
	"video2broll/internal/app/api/scribie"
)

// TranscriptionProvider is the asynchronous speech-to-text collaborator.
type TranscriptionProvider interface {
	Submit(ctx context.Context, mediaURL, displayName string) (string, error)
	GetStatus(ctx context.Context, jobID string) (*scribie.JobStatus, error)
	DownloadTranscript(ctx context.Context, downloadURL string) ([]scribie.Monologue, error)
}

// TextGenerator is the prompt-to-text collaborator used for keyword
// extraction.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StockProvider is the stock footage search collaborator.
type StockProvider interface {
	SearchVideos(ctx context.Context, query, orientation string, perPage int) ([]pexels.Video, error)
}

// DurationProber resolves a source URI to a playable media duration in
// seconds.
type DurationProber interface {
	Probe(ctx context.Context, sourceURL string) (float64, error)
}
