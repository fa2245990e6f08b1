package runner

import (
	"context"
	"log/slog"
	"time"

	"video2broll/internal/app/api/scribie"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
)

// Config tunes an end-to-end pipeline run.
type Config struct {
	// PollInterval spaces transcription status probes. Defaults to 10s.
	PollInterval time.Duration
	// PollTimeout bounds the transcription wait. Defaults to 30m.
	PollTimeout time.Duration
	AspectRatio string
	Progress    ProgressConfig
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 30 * time.Minute
	}
	return c
}

// Runner drives one media record through every pipeline stage:
// transcription submit and poll, keyword extraction, stock matching,
// and packaging.
type Runner struct {
	transcriber *pipeline.Transcriber
	extractor   *pipeline.KeywordExtractor
	matcher     *pipeline.StockMatcher
	packager    *pipeline.PackageBuilder
	config      Config
	logger      *slog.Logger
}

// New creates a pipeline runner.
func New(
	transcriber *pipeline.Transcriber,
	extractor *pipeline.KeywordExtractor,
	matcher *pipeline.StockMatcher,
	packager *pipeline.PackageBuilder,
	config Config,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		transcriber: transcriber,
		extractor:   extractor,
		matcher:     matcher,
		packager:    packager,
		config:      config.withDefaults(),
		logger:      logger,
	}
}

// Run executes the full pipeline for one record and returns the
// published package link.
func (r *Runner) Run(ctx context.Context, recordID string) (string, error) {
	progress := NewProgressManager(r.config.Progress)
	defer progress.Shutdown()

	// submit, transcribe, keywords, match, package
	bar := progress.CreateBar(5, "Building b-roll package")

	jobID, err := r.transcriber.Submit(ctx, recordID)
	if err != nil {
		return "", err
	}
	bar.Increment()

	if err := r.awaitTranscript(ctx, jobID); err != nil {
		return "", err
	}
	bar.Increment()

	if _, err := r.extractor.Extract(ctx, recordID); err != nil {
		return "", err
	}
	bar.Increment()

	clips, err := r.matcher.Match(ctx, recordID, nil, r.config.AspectRatio)
	if err != nil {
		return "", err
	}
	bar.Increment()

	if len(clips) == 0 {
		return "", apperrors.PreconditionFailed("no stock clips matched; nothing to package")
	}
	link, err := r.packager.Build(ctx, recordID, toClipSources(clips))
	if err != nil {
		return "", err
	}
	bar.Increment()
	bar.Complete()
	progress.Wait()

	r.logger.Info("pipeline run complete",
		"media_id", recordID,
		"job_id", jobID,
		"package_link", link,
	)
	return link, nil
}

// awaitTranscript polls the job on the configured interval until it
// reaches a terminal state or the timeout expires.
func (r *Runner) awaitTranscript(ctx context.Context, jobID string) error {
	deadline := time.Now().Add(r.config.PollTimeout)
	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		result, err := r.transcriber.PollAndIngest(ctx, jobID)
		if err != nil {
			return err
		}
		if scribie.IsTerminal(result.State) {
			if !result.Ingested {
				return apperrors.Newf(apperrors.KindUpstreamRejected,
					"transcription job ended in state %s", result.State)
			}
			return nil
		}

		if time.Now().After(deadline) {
			return apperrors.UpstreamUnavailable("transcription service",
				context.DeadlineExceeded)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func toClipSources(clips []model.ClipCandidate) []pipeline.ClipSource {
	sources := make([]pipeline.ClipSource, len(clips))
	for i, clip := range clips {
		sources[i] = pipeline.ClipSource{DownloadCandidates: clip.DownloadCandidates}
	}
	return sources
}
