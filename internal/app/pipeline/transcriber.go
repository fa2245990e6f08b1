package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"video2broll/internal/app/api/scribie"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/repository"
)

// Transcriber orchestrates the asynchronous transcription stage:
// submission, caller-driven status polling, and idempotent ingestion of
// the finished transcript. It never blocks or retries on its own; each
// call is a stateless probe and the caller owns the polling schedule.
type Transcriber struct {
	dao      repository.MediaRecordDAO
	provider TranscriptionProvider
	logger   *slog.Logger
}

// NewTranscriber creates the transcription orchestrator.
func NewTranscriber(dao repository.MediaRecordDAO, provider TranscriptionProvider, logger *slog.Logger) *Transcriber {
	return &Transcriber{dao: dao, provider: provider, logger: logger}
}

// PollResult is the outcome of one status probe.
type PollResult struct {
	State      string
	Transcript string
	// Ingested reports whether this probe persisted a transcript.
	Ingested bool
}

// Submit registers the record's source media with the transcription
// service and persists the returned job handle.
func (t *Transcriber) Submit(ctx context.Context, recordID string) (jobID string, err error) {
	start := time.Now()
	defer func() { observeStage("transcribe_submit", start, err) }()

	record, err := t.dao.GetByID(recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFound("media record", recordID)
		}
		return "", err
	}

	jobID, err = t.provider.Submit(ctx, record.SourceLocation, record.FileName)
	if err != nil {
		return "", err
	}

	if err = t.dao.SetTranscriptionJob(record.ID, jobID); err != nil {
		return "", err
	}

	t.logger.Info("transcription job submitted",
		"media_id", record.ID,
		"job_id", jobID,
	)
	return jobID, nil
}

// PollAndIngest probes the job state. Pending and processing states are
// side-effect free. A terminal success fetches the word-level payload,
// joins it into prose, and persists it on the record holding this job
// id; re-polling an already ingested job rewrites the same text. Any
// other terminal state is returned as-is with no transcript.
func (t *Transcriber) PollAndIngest(ctx context.Context, jobID string) (result *PollResult, err error) {
	start := time.Now()
	defer func() { observeStage("transcribe_poll", start, err) }()

	status, err := t.provider.GetStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !scribie.IsTerminal(status.State) {
		return &PollResult{State: status.State}, nil
	}

	if !scribie.IsTerminalSuccess(status.State) {
		t.logger.Warn("transcription job ended without transcript",
			"job_id", jobID,
			"state", status.State,
		)
		return &PollResult{State: status.State}, nil
	}

	monologues, err := t.provider.DownloadTranscript(ctx, status.DownloadURL)
	if err != nil {
		return nil, err
	}

	transcript := JoinWords(monologues)
	if err = t.dao.SetTranscript(jobID, transcript); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media record for transcription job", jobID)
		}
		return nil, err
	}

	t.logger.Info("transcript ingested",
		"job_id", jobID,
		"state", status.State,
		"characters", len(transcript),
	)
	return &PollResult{State: status.State, Transcript: transcript, Ingested: true}, nil
}

// JoinWords concatenates word-level transcript tokens into prose text.
// Punctuation arrives as separate tokens and is glued back onto the
// preceding word.
func JoinWords(monologues []scribie.Monologue) string {
	var builder strings.Builder
	for _, monologue := range monologues {
		for _, word := range monologue.Words {
			appendToken(&builder, word.Text)
		}
	}
	return builder.String()
}

// NormalizeSpacing repairs transcript text whose punctuation floats as
// standalone tokens, e.g. "Hello , world ." becomes "Hello, world.".
func NormalizeSpacing(text string) string {
	var builder strings.Builder
	for _, token := range strings.Fields(text) {
		appendToken(&builder, token)
	}
	return builder.String()
}

func appendToken(builder *strings.Builder, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	if builder.Len() > 0 && !gluesToPrevious(token) {
		builder.WriteByte(' ')
	}
	builder.WriteString(token)
}

// gluesToPrevious reports whether a token attaches to the preceding
// word without a space.
func gluesToPrevious(token string) bool {
	return strings.ContainsRune(".,!?;:%)]", rune(token[0]))
}
