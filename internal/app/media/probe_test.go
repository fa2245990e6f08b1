package media_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/media"
)

func TestIsMediaContentType(t *testing.T) {
	testCases := []struct {
		contentType string
		expected    bool
	}{
		{contentType: "video/mp4", expected: true},
		{contentType: "video/quicktime", expected: true},
		{contentType: "audio/mpeg", expected: true},
		{contentType: "application/octet-stream", expected: true},
		{contentType: "application/mp4", expected: true},
		{contentType: "video/mp4; charset=binary", expected: true},
		{contentType: "text/html", expected: false},
		{contentType: "text/html; charset=utf-8", expected: false},
		{contentType: "application/json", expected: false},
		{contentType: "", expected: false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, media.IsMediaContentType(tc.contentType), "content type %q", tc.contentType)
	}
}

func TestParseProbeDuration(t *testing.T) {
	testCases := []struct {
		name        string
		output      string
		expected    float64
		expectError bool
	}{
		{name: "plain", output: "12.5\n", expected: 12.5},
		{name: "integer", output: "45", expected: 45},
		{name: "zero", output: "0.0", expected: 0},
		{name: "empty output", output: "", expectError: true},
		{name: "N/A marker", output: "N/A\n", expectError: true},
		{name: "negative", output: "-3", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			duration, err := media.ParseProbeDuration(tc.output)
			if tc.expectError {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidMedia))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, duration)
		})
	}
}

func TestProbeRejectsHTMLPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>sign in to view this file</body></html>"))
	}))
	defer server.Close()

	prober := media.NewFFProbe()
	_, err := prober.Probe(context.Background(), server.URL+"/talk.mp4")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidMedia))
}

func TestProbeSurfacesUpstreamRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired link", http.StatusForbidden)
	}))
	defer server.Close()

	prober := media.NewFFProbe()
	_, err := prober.Probe(context.Background(), server.URL+"/talk.mp4")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamRejected))
	assert.Contains(t, apperrors.UpstreamBody(err), "expired link")
}
