package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"video2broll/internal/app/api/pexels"
	"video2broll/internal/app/api/scribie"
)

// MockTranscriptionProvider stubs the transcription service with
// function fields. Unset fields return zero values.
type MockTranscriptionProvider struct {
	SubmitFunc             func(ctx context.Context, mediaURL, displayName string) (string, error)
	GetStatusFunc          func(ctx context.Context, jobID string) (*scribie.JobStatus, error)
	DownloadTranscriptFunc func(ctx context.Context, downloadURL string) ([]scribie.Monologue, error)
}

func (m *MockTranscriptionProvider) Submit(ctx context.Context, mediaURL, displayName string) (string, error) {
	if m.SubmitFunc == nil {
		return "", nil
	}
	return m.SubmitFunc(ctx, mediaURL, displayName)
}

func (m *MockTranscriptionProvider) GetStatus(ctx context.Context, jobID string) (*scribie.JobStatus, error) {
	if m.GetStatusFunc == nil {
		return &scribie.JobStatus{State: scribie.StatePending}, nil
	}
	return m.GetStatusFunc(ctx, jobID)
}

func (m *MockTranscriptionProvider) DownloadTranscript(ctx context.Context, downloadURL string) ([]scribie.Monologue, error) {
	if m.DownloadTranscriptFunc == nil {
		return nil, nil
	}
	return m.DownloadTranscriptFunc(ctx, downloadURL)
}

// Monologue builds a word-level payload from space-separated tokens,
// for transcript ingestion tests.
func Monologue(speaker string, tokens string) scribie.Monologue {
	fields := strings.Fields(tokens)
	words := make([]scribie.Word, len(fields))
	for i, field := range fields {
		words[i] = scribie.Word{Text: field}
	}
	return scribie.Monologue{Speaker: speaker, Words: words}
}

// MockTextGenerator stubs the completion service.
type MockTextGenerator struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
	// Prompts records every prompt passed in.
	Prompts []string
	mu      sync.Mutex
}

func (m *MockTextGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.CompleteFunc == nil {
		return "", nil
	}
	return m.CompleteFunc(ctx, prompt)
}

// MockStockProvider stubs video search with a per-keyword response map.
type MockStockProvider struct {
	// Videos maps query -> results; queries absent from the map return
	// no results. Errors maps query -> failure.
	Videos map[string][]pexels.Video
	Errors map[string]error
	// SearchFunc overrides the map lookup entirely when set.
	SearchFunc func(ctx context.Context, query, orientation string, perPage int) ([]pexels.Video, error)

	mu      sync.Mutex
	Queries []string
}

func (m *MockStockProvider) SearchVideos(ctx context.Context, query, orientation string, perPage int) ([]pexels.Video, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, orientation, perPage)
	}
	if err, ok := m.Errors[query]; ok {
		return nil, err
	}
	return m.Videos[query], nil
}

// MockProber stubs media duration probing.
type MockProber struct {
	Duration float64
	Err      error
}

func (m *MockProber) Probe(ctx context.Context, mediaURL string) (float64, error) {
	return m.Duration, m.Err
}

// MockStorage is an in-memory object store.
type MockStorage struct {
	mu sync.Mutex
	// Objects maps path -> stored bytes.
	Objects map[string][]byte
	// PutErr, LinkErr, and DeleteErr force the matching call to fail.
	PutErr    error
	LinkErr   error
	DeleteErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{Objects: make(map[string][]byte)}
}

func (m *MockStorage) Put(ctx context.Context, path string, content io.Reader) (string, error) {
	if m.PutErr != nil {
		return "", m.PutErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.Objects[path] = data
	m.mu.Unlock()
	return path, nil
}

func (m *MockStorage) CreateOrGetSharedLink(ctx context.Context, path string) (string, error) {
	if m.LinkErr != nil {
		return "", m.LinkErr
	}
	return "https://share.test" + path + "?dl=0", nil
}

func (m *MockStorage) Delete(ctx context.Context, path string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	delete(m.Objects, path)
	m.mu.Unlock()
	return nil
}

func (m *MockStorage) DirectDownloadLink(link string) string {
	return strings.Replace(link, "dl=0", "dl=1", 1)
}
