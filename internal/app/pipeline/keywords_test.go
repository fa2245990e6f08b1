package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/testutil"
)

func TestTargetKeywordCount(t *testing.T) {
	testCases := []struct {
		durationSeconds float64
		expected        int
	}{
		{durationSeconds: 0, expected: 1},
		{durationSeconds: 3, expected: 1},
		{durationSeconds: 4, expected: 1},
		{durationSeconds: 5, expected: 1},
		{durationSeconds: 9.9, expected: 1},
		{durationSeconds: 10, expected: 2},
		{durationSeconds: 12, expected: 2},
		{durationSeconds: 27.9, expected: 5},
		{durationSeconds: 60, expected: 12},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, pipeline.TargetKeywordCount(tc.durationSeconds),
			"duration %.1f", tc.durationSeconds)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comma separated",
			input:    "coffee, office desk, teamwork",
			expected: []string{"Coffee", "Office Desk", "Teamwork"},
		},
		{
			name:     "markdown list",
			input:    "1. **Coffee**\n2. *office desk*\n- teamwork",
			expected: []string{"Coffee", "Office Desk", "Teamwork"},
		},
		{
			name:     "case insensitive dedupe keeps first order",
			input:    "Office, office, Teamwork",
			expected: []string{"Office", "Teamwork"},
		},
		{
			name:     "blank candidates dropped",
			input:    "coffee,, ,\n\nteamwork",
			expected: []string{"Coffee", "Teamwork"},
		},
		{
			name:     "whitespace collapsed inside terms",
			input:    "busy   city  street",
			expected: []string{"Busy City Street"},
		},
		{
			name:     "no usable tokens",
			input:    "* * *\n###",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := pipeline.NormalizeKeywords(tc.input)
			assert.Equal(t, tc.expected, got)

			// Normalizing its own output changes nothing.
			again := pipeline.NormalizeKeywords(strings.Join(got, ", "))
			assert.Equal(t, got, again)
		})
	}
}

func TestExtractPersistsKeywords(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{
		ID:             "media-1",
		SourceLocation: "https://files.test/talk.mp4",
		Transcript:     "People drink coffee at the office while working together.",
	})
	generator := &testutil.MockTextGenerator{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "coffee, office desk", nil
		},
	}
	prober := &testutil.MockProber{Duration: 12}
	extractor := pipeline.NewKeywordExtractor(dao, generator, prober, discardLogger())

	keywords, err := extractor.Extract(context.Background(), "media-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee", "Office Desk"}, keywords)

	record, err := dao.GetByID("media-1")
	require.NoError(t, err)
	assert.Equal(t, keywords, record.Keywords)

	// 12 seconds of footage asks for floor(12/5) = 2 terms.
	require.Len(t, generator.Prompts, 1)
	assert.Contains(t, generator.Prompts[0], "approximately 2 short search terms")
	assert.Contains(t, generator.Prompts[0], record.Transcript)
}

func TestExtractReplacesKeywordsWholesale(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{
		ID:             "media-1",
		SourceLocation: "https://files.test/talk.mp4",
		Transcript:     "some transcript",
		Keywords:       []string{"Stale", "Old"},
	})
	generator := &testutil.MockTextGenerator{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			return "fresh", nil
		},
	}
	extractor := pipeline.NewKeywordExtractor(dao, generator, &testutil.MockProber{Duration: 4}, discardLogger())

	keywords, err := extractor.Extract(context.Background(), "media-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh"}, keywords)

	record, err := dao.GetByID("media-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh"}, record.Keywords)
}

func TestExtractRequiresTranscript(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1", SourceLocation: "https://files.test/talk.mp4"})
	extractor := pipeline.NewKeywordExtractor(dao, &testutil.MockTextGenerator{}, &testutil.MockProber{Duration: 10}, discardLogger())

	_, err := extractor.Extract(context.Background(), "media-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPreconditionFailed))
}

func TestExtractUnknownRecord(t *testing.T) {
	extractor := pipeline.NewKeywordExtractor(testutil.NewMockMediaRecordDAO(), &testutil.MockTextGenerator{}, &testutil.MockProber{}, discardLogger())

	_, err := extractor.Extract(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
