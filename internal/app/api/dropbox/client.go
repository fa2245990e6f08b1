package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "video2broll/internal/app/errors"
)

// Config represents configuration for the Dropbox client.
type Config struct {
	AccessToken string `yaml:"access_token"`
	APIBaseURL  string `yaml:"api_base_url"`
	ContentURL  string `yaml:"content_base_url"`
	Timeout     int    `yaml:"timeout_sec"`
}

// Client wraps the two Dropbox API hosts: the RPC host for metadata and
// sharing calls and the content host for uploads.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a Dropbox client.
func NewClient(config Config) *Client {
	if config.APIBaseURL == "" {
		config.APIBaseURL = "https://api.dropboxapi.com/2"
	}
	if config.ContentURL == "" {
		config.ContentURL = "https://content.dropboxapi.com/2"
	}
	if config.Timeout == 0 {
		config.Timeout = 120
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
}

type uploadArg struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
}

type pathArg struct {
	Path string `json:"path"`
}

type sharedLinkResponse struct {
	URL string `json:"url"`
}

type listSharedLinksResponse struct {
	Links []sharedLinkResponse `json:"links"`
}

type apiErrorResponse struct {
	ErrorSummary string `json:"error_summary"`
}

// Upload writes content to path on the content host, overwriting any
// existing object. Returns the stored path.
func (c *Client) Upload(ctx context.Context, path string, content io.Reader) (string, error) {
	arg, err := json.Marshal(uploadArg{Path: path, Mode: "overwrite"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ContentURL+"/files/upload", content)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Dropbox-API-Arg", string(arg))
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.UpstreamUnavailable("dropbox", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return "", apperrors.UpstreamRejected("dropbox", resp.StatusCode, string(body))
	}
	return path, nil
}

// CreateOrGetSharedLink returns a shareable URL for path. When the
// provider reports the link already exists, the existing link is looked
// up and reused instead of treating the conflict as an error.
func (c *Client) CreateOrGetSharedLink(ctx context.Context, path string) (string, error) {
	resp, err := c.rpc(ctx, "/sharing/create_shared_link_with_settings", pathArg{Path: path})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var link sharedLinkResponse
		if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
			return "", apperrors.Wrap(err, apperrors.KindUpstreamRejected, "dropbox returned malformed shared link response")
		}
		return link.URL, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var apiErr apiErrorResponse
	_ = json.Unmarshal(body, &apiErr)
	if resp.StatusCode == http.StatusConflict && strings.Contains(apiErr.ErrorSummary, "shared_link_already_exists") {
		return c.getExistingSharedLink(ctx, path)
	}
	return "", apperrors.UpstreamRejected("dropbox", resp.StatusCode, string(body))
}

func (c *Client) getExistingSharedLink(ctx context.Context, path string) (string, error) {
	resp, err := c.rpc(ctx, "/sharing/list_shared_links", struct {
		Path       string `json:"path"`
		DirectOnly bool   `json:"direct_only"`
	}{Path: path, DirectOnly: true})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return "", apperrors.UpstreamRejected("dropbox", resp.StatusCode, string(body))
	}

	var links listSharedLinksResponse
	if err := json.NewDecoder(resp.Body).Decode(&links); err != nil {
		return "", apperrors.Wrap(err, apperrors.KindUpstreamRejected, "dropbox returned malformed shared links response")
	}
	if len(links.Links) == 0 {
		return "", apperrors.New(apperrors.KindUpstreamRejected, "dropbox reported an existing shared link but returned none")
	}
	return links.Links[0].URL, nil
}

// Delete removes path. A missing object is not an error.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.rpc(ctx, "/files/delete_v2", pathArg{Path: path})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var apiErr apiErrorResponse
	_ = json.Unmarshal(body, &apiErr)
	if resp.StatusCode == http.StatusConflict && strings.Contains(apiErr.ErrorSummary, "not_found") {
		return nil
	}
	return apperrors.UpstreamRejected("dropbox", resp.StatusCode, string(body))
}

func (c *Client) rpc(ctx context.Context, endpoint string, arg interface{}) (*http.Response, error) {
	body, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIBaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("dropbox", err)
	}
	return resp, nil
}

// ForceDirectDownload rewrites a shared link so following it downloads
// the object instead of rendering the Dropbox preview page.
func ForceDirectDownload(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	query := parsed.Query()
	query.Set("dl", "1")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// String implements fmt.Stringer for config dumps without the token.
func (c Config) String() string {
	return fmt.Sprintf("dropbox{api:%s content:%s}", c.APIBaseURL, c.ContentURL)
}
