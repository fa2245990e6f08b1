package pexels

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "video2broll/internal/app/errors"
)

// Config represents configuration for the stock footage client.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout_sec"`
}

// Client queries the Pexels video search API.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a stock footage client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.pexels.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 30
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
}

// SearchVideos returns up to perPage videos matching query in the given
// orientation. An empty orientation lets the provider pick.
func (c *Client) SearchVideos(ctx context.Context, query, orientation string, perPage int) ([]Video, error) {
	if perPage <= 0 {
		perPage = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	if orientation != "" {
		params.Set("orientation", orientation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/videos/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("stock footage service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, apperrors.UpstreamRejected("stock footage service", resp.StatusCode, string(body))
	}

	var search SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUpstreamRejected, "stock footage service returned malformed response")
	}
	return search.Videos, nil
}
