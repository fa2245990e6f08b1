package scribie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "video2broll/internal/app/errors"
)

// Config represents configuration for the transcription service client.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout_sec"`
}

// Client talks to the external speech-to-text service. Submission and
// completion are decoupled: Submit returns a job handle, GetStatus is a
// stateless probe, and DownloadTranscript fetches the finished payload.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a transcription service client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.scribie.com/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 60
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
}

type submitRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type submitResponse struct {
	Job Job `json:"job"`
}

// Submit registers mediaURL for transcription and returns the job id.
// The media URL must be publicly resolvable by the service.
func (c *Client) Submit(ctx context.Context, mediaURL, displayName string) (string, error) {
	body, err := json.Marshal(submitRequest{URL: mediaURL, Name: displayName})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.UpstreamUnavailable("transcription service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", rejectionError(resp)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstreamRejected, "transcription service returned malformed submit response")
	}
	if submitted.Job.ID == "" {
		return "", apperrors.New(apperrors.KindUpstreamRejected, "transcription service returned no job id")
	}
	return submitted.Job.ID, nil
}

// GetStatus probes the state of a submitted job.
func (c *Client) GetStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	url := fmt.Sprintf("%s/jobs/%s/status", c.config.BaseURL, jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("transcription service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("transcription job", jobID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejectionError(resp)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstreamRejected, "transcription service returned malformed status response")
	}
	return &status, nil
}

// DownloadTranscript fetches the word-level transcript payload from the
// download URL reported by a terminal-success status.
func (c *Client) DownloadTranscript(ctx context.Context, downloadURL string) ([]Monologue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("transcription service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejectionError(resp)
	}

	var monologues []Monologue
	if err := json.NewDecoder(resp.Body).Decode(&monologues); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstreamRejected, "transcription service returned malformed transcript payload")
	}
	return monologues, nil
}

// rejectionError preserves the provider body verbatim so the caller can
// diagnose the rejection.
func rejectionError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return apperrors.UpstreamRejected("transcription service", resp.StatusCode, string(body))
}
