package model

import (
	"encoding/json"
	"strings"
	"time"
)

// MediaRecord is the durable record of one uploaded video and every
// artifact the pipeline derives from it. Fields are written stage by
// stage; a rerun of a stage replaces that stage's fields wholesale and
// leaves earlier stages untouched.
type MediaRecord struct {
	ID                 string
	Owner              string
	FileName           string
	SourceLocation     string
	StoragePath        string
	TranscriptionJobID string
	Transcript         string
	Keywords           []string
	CandidateClips     []ClipCandidate
	PackageLink        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClipCandidate describes one stock clip matched to a keyword.
type ClipCandidate struct {
	Keyword            string   `json:"keyword"`
	SourceID           int64    `json:"source_id"`
	PreviewURL         string   `json:"preview_url"`
	DurationSeconds    int      `json:"duration_seconds"`
	ThumbnailURL       string   `json:"thumbnail_url"`
	DownloadCandidates []string `json:"download_candidates"`
}

// HasTranscript reports whether the transcription stage has produced
// usable text for downstream stages.
func (m *MediaRecord) HasTranscript() bool {
	return strings.TrimSpace(m.Transcript) != ""
}

// JoinKeywords encodes a keyword list into the comma-joined string the
// repository persists. The joined form is part of the stored-state
// contract, so it must round-trip through SplitKeywords.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ",")
}

// SplitKeywords decodes a stored comma-joined keyword column.
func SplitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// EncodeClips serializes candidate clips into the JSON text column.
func EncodeClips(clips []ClipCandidate) (string, error) {
	if len(clips) == 0 {
		return "", nil
	}
	data, err := json.Marshal(clips)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeClips deserializes a stored candidate clips column.
func DecodeClips(s string) ([]ClipCandidate, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var clips []ClipCandidate
	if err := json.Unmarshal([]byte(s), &clips); err != nil {
		return nil, err
	}
	return clips, nil
}
