package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"video2broll/internal/app/api/pexels"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/repository"
)

// MatcherConfig tunes the stock footage matching stage.
type MatcherConfig struct {
	// Concurrency bounds parallel per-keyword searches. Zero or one
	// searches sequentially.
	Concurrency int `yaml:"concurrency"`
	// MinClipSeconds drops clips shorter than this. Defaults to 5.
	MinClipSeconds int `yaml:"min_clip_seconds"`
	// ResultsPerKeyword is the per_page passed to the provider.
	// Defaults to 1.
	ResultsPerKeyword int `yaml:"results_per_keyword"`
}

func (c MatcherConfig) withDefaults() MatcherConfig {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.MinClipSeconds == 0 {
		c.MinClipSeconds = 5
	}
	if c.ResultsPerKeyword < 1 {
		c.ResultsPerKeyword = 1
	}
	return c
}

// acceptedQualities are the download variant qualities worth packaging.
var acceptedQualities = map[string]bool{"hd": true, "sd": true}

// StockMatcher queries the stock footage provider per keyword and
// assembles the flat, ordered candidate list.
type StockMatcher struct {
	dao      repository.MediaRecordDAO
	provider StockProvider
	config   MatcherConfig
	logger   *slog.Logger
}

// NewStockMatcher creates the stock footage matching stage.
func NewStockMatcher(dao repository.MediaRecordDAO, provider StockProvider, config MatcherConfig, logger *slog.Logger) *StockMatcher {
	return &StockMatcher{dao: dao, provider: provider, config: config.withDefaults(), logger: logger}
}

// OrientationFor maps a declared aspect ratio to a provider search
// orientation.
func OrientationFor(aspectRatio string) string {
	switch aspectRatio {
	case "9:16", "3:4":
		return pexels.OrientationPortrait
	case "1:1":
		return pexels.OrientationSquare
	case "16:9", "4:3":
		return pexels.OrientationLandscape
	default:
		return pexels.OrientationLandscape
	}
}

// Match searches the provider for every keyword and persists the
// resulting candidate list wholesale. Keywords are queried concurrently
// up to the configured bound, but the returned sequence always reflects
// keyword input order. A failed keyword is logged and contributes no
// entries; Match only fails when the record is missing or the store
// write fails.
func (m *StockMatcher) Match(ctx context.Context, recordID string, keywords []string, aspectRatio string) (clips []model.ClipCandidate, err error) {
	start := time.Now()
	defer func() { observeStage("match", start, err) }()

	record, err := m.dao.GetByID(recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media record", recordID)
		}
		return nil, err
	}
	if len(keywords) == 0 {
		keywords = record.Keywords
	}

	orientation := OrientationFor(aspectRatio)
	perKeyword := make([][]model.ClipCandidate, len(keywords))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, m.config.Concurrency)
	for i, keyword := range keywords {
		wg.Add(1)
		go func(i int, keyword string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			videos, searchErr := m.provider.SearchVideos(ctx, keyword, orientation, m.config.ResultsPerKeyword)
			if searchErr != nil {
				itemsSkipped.WithLabelValues("match").Inc()
				m.logger.Warn("stock search failed for keyword, skipping",
					"media_id", recordID,
					"keyword", keyword,
					"error", searchErr,
				)
				return
			}
			perKeyword[i] = m.candidatesFor(keyword, videos)
		}(i, keyword)
	}
	wg.Wait()

	clips = lo.Flatten(perKeyword)
	if err = m.dao.SetCandidateClips(record.ID, clips); err != nil {
		return nil, err
	}

	m.logger.Info("stock clips matched",
		"media_id", record.ID,
		"keywords", len(keywords),
		"clips", len(clips),
		"orientation", orientation,
	)
	return clips, nil
}

// candidatesFor filters one keyword's search results down to packageable
// candidates: long enough to cut into, with hd/sd download variants.
func (m *StockMatcher) candidatesFor(keyword string, videos []pexels.Video) []model.ClipCandidate {
	candidates := make([]model.ClipCandidate, 0, len(videos))
	for _, video := range videos {
		if video.Duration < m.config.MinClipSeconds {
			continue
		}
		files := lo.Filter(video.Files, func(f pexels.VideoFile, _ int) bool {
			return acceptedQualities[f.Quality]
		})
		// A candidate the packager could never download is not a candidate.
		if len(files) == 0 {
			continue
		}
		candidates = append(candidates, model.ClipCandidate{
			Keyword:         keyword,
			SourceID:        video.ID,
			PreviewURL:      video.URL,
			DurationSeconds: video.Duration,
			ThumbnailURL:    video.Image,
			DownloadCandidates: lo.Map(files, func(f pexels.VideoFile, _ int) string {
				return f.Link
			}),
		})
	}
	return candidates
}
