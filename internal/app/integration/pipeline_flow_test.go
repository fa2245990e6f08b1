//go:build integration
// +build integration

package integration

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2broll/internal/app/api/pexels"
	"video2broll/internal/app/api/scribie"
	"video2broll/internal/app/model"
	"video2broll/internal/app/pipeline"
	"video2broll/internal/app/testutil"
)

// TestPipelineFlow drives a record through every stage in order:
// transcription submit and poll, keyword extraction, stock matching,
// and packaging, sharing one in-memory DAO so each stage sees the
// previous stage's writes.
func TestPipelineFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping pipeline flow test in short mode")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dao := testutil.NewMockMediaRecordDAO()
	dao.Seed(model.MediaRecord{
		ID:             "media-1",
		Owner:          "alice",
		FileName:       "talk.mp4",
		SourceLocation: "https://files.test/talk.mp4?dl=1",
	})

	clipServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clip-bytes-" + r.URL.Path))
	}))
	defer clipServer.Close()

	ctx := context.Background()

	// Stage 1: submit and poll the transcription job.
	transcriptionProvider := &testutil.MockTranscriptionProvider{
		SubmitFunc: func(ctx context.Context, mediaURL, displayName string) (string, error) {
			assert.Equal(t, "https://files.test/talk.mp4?dl=1", mediaURL)
			assert.Equal(t, "talk.mp4", displayName)
			return "job-1", nil
		},
		GetStatusFunc: func(ctx context.Context, jobID string) (*scribie.JobStatus, error) {
			return &scribie.JobStatus{
				State:       scribie.StateAutomaticDone,
				DownloadURL: "https://files.test/job-1/transcript.json",
			}, nil
		},
		DownloadTranscriptFunc: func(ctx context.Context, downloadURL string) ([]scribie.Monologue, error) {
			return []scribie.Monologue{
				testutil.Monologue("speaker_1", "Our office runs on teamwork ."),
			}, nil
		},
	}
	transcriber := pipeline.NewTranscriber(dao, transcriptionProvider, logger)

	jobID, err := transcriber.Submit(ctx, "media-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)

	result, err := transcriber.PollAndIngest(ctx, jobID)
	require.NoError(t, err)
	assert.True(t, result.Ingested)
	assert.Equal(t, "Our office runs on teamwork.", result.Transcript)

	// Stage 2: extract keywords from the persisted transcript.
	generator := &testutil.MockTextGenerator{
		CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Our office runs on teamwork.")
			return "office, teamwork", nil
		},
	}
	extractor := pipeline.NewKeywordExtractor(dao, generator, &testutil.MockProber{Duration: 12}, logger)

	keywords, err := extractor.Extract(ctx, "media-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Office", "Teamwork"}, keywords)

	// Stage 3: match stock clips against the stored keywords.
	stockProvider := &testutil.MockStockProvider{
		Videos: map[string][]pexels.Video{
			"Office": {{
				ID: 101, URL: "https://videos.test/page/101", Duration: 14,
				Image: "https://videos.test/101.jpg",
				Files: []pexels.VideoFile{{Quality: "hd", FileType: "video/mp4", Link: clipServer.URL + "/101.mp4"}},
			}},
			"Teamwork": {{
				ID: 202, URL: "https://videos.test/page/202", Duration: 9,
				Image: "https://videos.test/202.jpg",
				Files: []pexels.VideoFile{{Quality: "sd", FileType: "video/mp4", Link: clipServer.URL + "/202.mp4"}},
			}},
		},
	}
	matcher := pipeline.NewStockMatcher(dao, stockProvider, pipeline.MatcherConfig{}, logger)

	clips, err := matcher.Match(ctx, "media-1", nil, "16:9")
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "Office", clips[0].Keyword)
	assert.Equal(t, "Teamwork", clips[1].Keyword)

	// Stage 4: package the selected clips and publish the archive.
	store := testutil.NewMockStorage()
	packager := pipeline.NewPackageBuilder(dao, store, logger)

	selection := make([]pipeline.ClipSource, len(clips))
	for i, clip := range clips {
		selection[i] = pipeline.ClipSource{DownloadCandidates: clip.DownloadCandidates}
	}
	link, err := packager.Build(ctx, "media-1", selection)
	require.NoError(t, err)
	assert.Equal(t, "https://share.test/broll_packages/talk_broll.zip?dl=1", link)

	archive, ok := store.Objects["/broll_packages/talk_broll.zip"]
	require.True(t, ok)
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 2)
	assert.Equal(t, "clip_1.mp4", reader.File[0].Name)
	assert.Equal(t, "clip_2.mp4", reader.File[1].Name)

	// The record now carries every stage's artifacts.
	record, err := dao.GetByID("media-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", record.TranscriptionJobID)
	assert.Equal(t, "Our office runs on teamwork.", record.Transcript)
	assert.Equal(t, []string{"Office", "Teamwork"}, record.Keywords)
	assert.Len(t, record.CandidateClips, 2)
	assert.Equal(t, link, record.PackageLink)
}
