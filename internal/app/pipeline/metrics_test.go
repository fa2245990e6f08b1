package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2broll/internal/app/model"
	"video2broll/internal/app/testutil"
)

// Stage metrics are recorded through a deferred closure so the named
// error return is read at return time, not at defer registration.
func TestFailedStageIncrementsFailureCounter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	matcher := NewStockMatcher(testutil.NewMockMediaRecordDAO(), &testutil.MockStockProvider{}, MatcherConfig{}, logger)

	before := promtestutil.ToFloat64(stageFailures.WithLabelValues("match"))

	_, err := matcher.Match(context.Background(), "media-unknown", []string{"Office"}, "16:9")
	require.Error(t, err)

	after := promtestutil.ToFloat64(stageFailures.WithLabelValues("match"))
	assert.Equal(t, before+1, after)
}

func TestSuccessfulStageLeavesFailureCounterUntouched(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{ID: "media-1"})
	matcher := NewStockMatcher(dao, &testutil.MockStockProvider{}, MatcherConfig{}, logger)

	before := promtestutil.ToFloat64(stageFailures.WithLabelValues("match"))

	_, err := matcher.Match(context.Background(), "media-1", []string{"Office"}, "16:9")
	require.NoError(t, err)

	after := promtestutil.ToFloat64(stageFailures.WithLabelValues("match"))
	assert.Equal(t, before, after)
}
