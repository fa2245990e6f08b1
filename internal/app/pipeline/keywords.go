package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/repository"
)

// secondsPerKeyword sets the keyword density: one search term per five
// seconds of source video.
const secondsPerKeyword = 5

// KeywordExtractor derives stock footage search terms from a finished
// transcript via the text generation service.
type KeywordExtractor struct {
	dao       repository.MediaRecordDAO
	generator TextGenerator
	prober    DurationProber
	logger    *slog.Logger
}

// NewKeywordExtractor creates the keyword extraction stage.
func NewKeywordExtractor(dao repository.MediaRecordDAO, generator TextGenerator, prober DurationProber, logger *slog.Logger) *KeywordExtractor {
	return &KeywordExtractor{dao: dao, generator: generator, prober: prober, logger: logger}
}

// Extract produces the canonical keyword list for a record and replaces
// the stored keywords wholesale. A generation response with no usable
// tokens yields an empty list, which downstream stages treat as "no
// matches" rather than a failure.
func (e *KeywordExtractor) Extract(ctx context.Context, recordID string) (keywords []string, err error) {
	start := time.Now()
	defer func() { observeStage("keywords", start, err) }()

	record, err := e.dao.GetByID(recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media record", recordID)
		}
		return nil, err
	}
	if !record.HasTranscript() {
		return nil, apperrors.PreconditionFailed("record has no transcript; run transcription first")
	}

	duration, err := e.prober.Probe(ctx, record.SourceLocation)
	if err != nil {
		return nil, err
	}
	target := TargetKeywordCount(duration)

	raw, err := e.generator.Complete(ctx, buildKeywordPrompt(record.Transcript, target))
	if err != nil {
		return nil, err
	}

	keywords = NormalizeKeywords(raw)
	if err = e.dao.SetKeywords(record.ID, keywords); err != nil {
		return nil, err
	}

	e.logger.Info("keywords extracted",
		"media_id", record.ID,
		"duration_seconds", duration,
		"target", target,
		"extracted", len(keywords),
	)
	return keywords, nil
}

// TargetKeywordCount maps a source duration in seconds to the number of
// keywords to request: max(1, floor(d/5)).
func TargetKeywordCount(durationSeconds float64) int {
	count := int(durationSeconds / secondsPerKeyword)
	if count < 1 {
		return 1
	}
	return count
}

func buildKeywordPrompt(transcript string, target int) string {
	return fmt.Sprintf(`You are choosing stock b-roll search terms for a voiceover video.
From the transcript below, extract approximately %d short search terms, separated by commas.
Every term must describe something visually concrete that a stock footage library would carry.
Do not include names of people, places or brands, numeric values, or abstractions that cannot be filmed.
Return only the comma-separated terms, without numbering or commentary.

Transcript:
%s`, target, transcript)
}

var (
	markdownDecoration = regexp.MustCompile("[*_`#]+")
	listPrefix         = regexp.MustCompile(`^\s*(?:[-•+>]+|\d+[.)])\s*`)
	keywordSplitter    = regexp.MustCompile(`[,\n]`)
	titleCaser         = cases.Title(language.English)
)

// NormalizeKeywords turns raw generated text into the canonical keyword
// sequence: decoration stripped, whitespace collapsed, split on commas
// and newlines, each candidate trimmed and title-cased, empties
// dropped, and case-insensitive duplicates removed keeping first-seen
// order. Idempotent over its own output.
func NormalizeKeywords(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = listPrefix.ReplaceAllString(line, "")
		line = markdownDecoration.ReplaceAllString(line, "")
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	candidates := keywordSplitter.Split(strings.Join(lines, "\n"), -1)
	keywords := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		keywords = append(keywords, titleCaser.String(candidate))
	}

	return lo.UniqBy(keywords, strings.ToLower)
}
