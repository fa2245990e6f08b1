package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2broll/internal/app/api/pexels"
	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/testutil"
)

func TestOrientationFor(t *testing.T) {
	testCases := []struct {
		aspectRatio string
		expected    string
	}{
		{aspectRatio: "16:9", expected: pexels.OrientationLandscape},
		{aspectRatio: "4:3", expected: pexels.OrientationLandscape},
		{aspectRatio: "9:16", expected: pexels.OrientationPortrait},
		{aspectRatio: "3:4", expected: pexels.OrientationPortrait},
		{aspectRatio: "1:1", expected: pexels.OrientationSquare},
		{aspectRatio: "", expected: pexels.OrientationLandscape},
		{aspectRatio: "21:9", expected: pexels.OrientationLandscape},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, pipeline.OrientationFor(tc.aspectRatio), "aspect ratio %q", tc.aspectRatio)
	}
}

func stockVideo(id int64, duration int, qualities ...string) pexels.Video {
	files := make([]pexels.VideoFile, len(qualities))
	for i, quality := range qualities {
		files[i] = pexels.VideoFile{
			Quality: quality,
			Link:    "https://videos.test/dl",
		}
	}
	return pexels.Video{
		ID:       id,
		URL:      "https://videos.test/page",
		Duration: duration,
		Image:    "https://videos.test/thumb.jpg",
		Files:    files,
	}
}

func TestMatchFiltersCandidates(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1"})
	provider := &testutil.MockStockProvider{
		Videos: map[string][]pexels.Video{
			"Coffee": {
				stockVideo(1, 3, "hd"),          // too short, dropped
				stockVideo(2, 8, "hd", "hls"),   // kept, hls variant filtered out
				stockVideo(3, 20, "uhd", "sd"),  // kept, only sd variant survives
				stockVideo(4, 30, "hls", "uhd"), // nothing downloadable, dropped
			},
		},
	}
	matcher := pipeline.NewStockMatcher(dao, provider, pipeline.MatcherConfig{}, discardLogger())

	clips, err := matcher.Match(context.Background(), "media-1", []string{"Coffee"}, "16:9")
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, int64(2), clips[0].SourceID)
	assert.Len(t, clips[0].DownloadCandidates, 1)
	assert.Equal(t, int64(3), clips[1].SourceID)
	assert.Len(t, clips[1].DownloadCandidates, 1)
	for _, clip := range clips {
		assert.Equal(t, "Coffee", clip.Keyword)
	}
}

func TestMatchPreservesKeywordOrder(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1"})

	// The first keyword responds slowest, so completion order inverts
	// input order.
	delays := map[string]time.Duration{"A": 30 * time.Millisecond, "B": 10 * time.Millisecond, "C": 0}
	ids := map[string]int64{"A": 1, "B": 2, "C": 3}
	provider := &testutil.MockStockProvider{
		SearchFunc: func(ctx context.Context, query, orientation string, perPage int) ([]pexels.Video, error) {
			time.Sleep(delays[query])
			return []pexels.Video{stockVideo(ids[query], 10, "hd")}, nil
		},
	}
	matcher := pipeline.NewStockMatcher(dao, provider, pipeline.MatcherConfig{Concurrency: 3}, discardLogger())

	clips, err := matcher.Match(context.Background(), "media-1", []string{"A", "B", "C"}, "16:9")
	require.NoError(t, err)
	require.Len(t, clips, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{clips[0].Keyword, clips[1].Keyword, clips[2].Keyword})
}

func TestMatchSkipsFailedKeyword(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1"})
	provider := &testutil.MockStockProvider{
		Videos: map[string][]pexels.Video{
			"A": {stockVideo(1, 10, "hd")},
			"C": {stockVideo(3, 10, "hd")},
		},
		Errors: map[string]error{
			"B": errors.New("rate limited"),
		},
	}
	matcher := pipeline.NewStockMatcher(dao, provider, pipeline.MatcherConfig{Concurrency: 2}, discardLogger())

	clips, err := matcher.Match(context.Background(), "media-1", []string{"A", "B", "C"}, "16:9")
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "A", clips[0].Keyword)
	assert.Equal(t, "C", clips[1].Keyword)
}

func TestMatchFallsBackToStoredKeywords(t *testing.T) {
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1", Keywords: []string{"Teamwork"}})
	provider := &testutil.MockStockProvider{
		Videos: map[string][]pexels.Video{
			"Teamwork": {stockVideo(7, 12, "hd")},
		},
	}
	matcher := pipeline.NewStockMatcher(dao, provider, pipeline.MatcherConfig{}, discardLogger())

	clips, err := matcher.Match(context.Background(), "media-1", nil, "9:16")
	require.NoError(t, err)
	require.Len(t, clips, 1)
	assert.Equal(t, []string{"Teamwork"}, provider.Queries)

	record, err := dao.GetByID("media-1")
	require.NoError(t, err)
	assert.Equal(t, clips, record.CandidateClips)
}

func TestMatchUnknownRecord(t *testing.T) {
	matcher := pipeline.NewStockMatcher(testutil.NewMockMediaRecordDAO(), &testutil.MockStockProvider{}, pipeline.MatcherConfig{}, discardLogger())

	_, err := matcher.Match(context.Background(), "nope", []string{"A"}, "16:9")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
