package scribie_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2broll/internal/app/api/scribie"
	apperrors "video2broll/internal/app/errors"
)

func newTestClient(server *httptest.Server) *scribie.Client {
	return scribie.NewClient(scribie.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
}

func TestSubmit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://files.test/talk.mp4", payload["url"])
		assert.Equal(t, "talk.mp4", payload["name"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"job": map[string]string{"id": "job-42"},
		})
	}))
	defer server.Close()

	jobID, err := newTestClient(server).Submit(context.Background(), "https://files.test/talk.mp4", "talk.mp4")
	require.NoError(t, err)
	assert.Equal(t, "job-42", jobID)
}

func TestSubmitRejectionPreservesBody(t *testing.T) {
	providerBody := `{"error":"unsupported media format","hint":"mp4 only"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(providerBody))
	}))
	defer server.Close()

	_, err := newTestClient(server).Submit(context.Background(), "https://files.test/talk.gif", "talk.gif")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamRejected))
	assert.Equal(t, providerBody, apperrors.UpstreamBody(err))
}

func TestSubmitMissingJobID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"job":{}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Submit(context.Background(), "https://files.test/talk.mp4", "talk.mp4")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstreamRejected))
}

func TestGetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/job-42/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"state":        "automatic_done",
			"download_url": "https://files.test/job-42/transcript.json",
		})
	}))
	defer server.Close()

	status, err := newTestClient(server).GetStatus(context.Background(), "job-42")
	require.NoError(t, err)
	assert.Equal(t, scribie.StateAutomaticDone, status.State)
	assert.Equal(t, "https://files.test/job-42/transcript.json", status.DownloadURL)
}

func TestGetStatusUnknownJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetStatus(context.Background(), "job-unknown")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDownloadTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"speaker":"speaker_1","words":[{"text":"Hello"},{"text":","},{"text":"world"},{"text":"."}]}
		]`))
	}))
	defer server.Close()

	monologues, err := newTestClient(server).DownloadTranscript(context.Background(), server.URL+"/payload")
	require.NoError(t, err)
	require.Len(t, monologues, 1)
	assert.Equal(t, "speaker_1", monologues[0].Speaker)
	assert.Len(t, monologues[0].Words, 4)
}

func TestTerminalStateHelpers(t *testing.T) {
	assert.False(t, scribie.IsTerminal(scribie.StatePending))
	assert.False(t, scribie.IsTerminal(scribie.StateProcessing))
	assert.True(t, scribie.IsTerminal(scribie.StateDone))
	assert.True(t, scribie.IsTerminal(scribie.StateAutomaticDone))
	assert.True(t, scribie.IsTerminal("failed"))

	assert.True(t, scribie.IsTerminalSuccess(scribie.StateDone))
	assert.True(t, scribie.IsTerminalSuccess(scribie.StateAutomaticDone))
	assert.False(t, scribie.IsTerminalSuccess("failed"))
	assert.False(t, scribie.IsTerminalSuccess(scribie.StatePending))
}
