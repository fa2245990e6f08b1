package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video2broll/internal/app/model"
)

func TestHasTranscript(t *testing.T) {
	assert.False(t, (&model.MediaRecord{}).HasTranscript())
	assert.False(t, (&model.MediaRecord{Transcript: "   \n"}).HasTranscript())
	assert.True(t, (&model.MediaRecord{Transcript: "Hello."}).HasTranscript())
}

func TestKeywordColumnRoundTrip(t *testing.T) {
	keywords := []string{"Coffee", "Office Desk", "Teamwork"}

	joined := model.JoinKeywords(keywords)
	assert.Equal(t, "Coffee,Office Desk,Teamwork", joined)
	assert.Equal(t, keywords, model.SplitKeywords(joined))

	assert.Nil(t, model.SplitKeywords(""))
	assert.Nil(t, model.SplitKeywords("  "))
	assert.Equal(t, []string{"One"}, model.SplitKeywords(",One,,"))
}

func TestClipColumnRoundTrip(t *testing.T) {
	clips := []model.ClipCandidate{
		{
			Keyword:            "Coffee",
			SourceID:           42,
			PreviewURL:         "https://videos.test/page",
			DurationSeconds:    9,
			ThumbnailURL:       "https://videos.test/thumb.jpg",
			DownloadCandidates: []string{"https://videos.test/hd.mp4"},
		},
	}

	encoded, err := model.EncodeClips(clips)
	require.NoError(t, err)

	decoded, err := model.DecodeClips(encoded)
	require.NoError(t, err)
	assert.Equal(t, clips, decoded)
}

func TestClipColumnEmpty(t *testing.T) {
	encoded, err := model.EncodeClips(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	decoded, err := model.DecodeClips("")
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = model.DecodeClips("{not json")
	assert.Error(t, err)
}
