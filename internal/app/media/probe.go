package media

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "video2broll/internal/app/errors"
)

// FFProbe resolves a source URL to a playable media duration by
// downloading the payload to a temp file and probing it with ffprobe.
type FFProbe struct {
	client *http.Client
}

// NewFFProbe creates a duration prober.
func NewFFProbe() *FFProbe {
	return &FFProbe{
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Probe returns the media duration in seconds. Content that does not
// resolve to a media payload fails with an invalid-media error so the
// caller never treats an HTML error page as a zero-length video.
func (p *FFProbe) Probe(ctx context.Context, sourceURL string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, apperrors.UpstreamUnavailable("media source", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return 0, apperrors.UpstreamRejected("media source", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if !IsMediaContentType(contentType) {
		return 0, apperrors.InvalidMedia(fmt.Sprintf("source resolved to %q, not a media payload", contentType))
	}

	tmp, err := os.CreateTemp("", "v2b-probe-*"+extensionFor(contentType))
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return 0, apperrors.UpstreamUnavailable("media source", err)
	}

	return probeFile(ctx, tmp.Name())
}

func probeFile(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.KindInvalidMedia, "ffprobe could not read the payload")
	}
	return ParseProbeDuration(string(output))
}

// ParseProbeDuration parses ffprobe's duration output line.
func ParseProbeDuration(output string) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.KindInvalidMedia, "ffprobe reported no duration")
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, apperrors.InvalidMedia("ffprobe reported a nonsensical duration")
	}
	return duration, nil
}

// IsMediaContentType reports whether a response content type denotes a
// playable audio/video payload. Octet streams pass through because many
// storage backends serve media without a specific type.
func IsMediaContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if strings.HasPrefix(mediaType, "video/") || strings.HasPrefix(mediaType, "audio/") {
		return true
	}
	return mediaType == "application/octet-stream" || mediaType == "application/mp4"
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}
	switch mediaType {
	case "video/mp4", "application/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	case "audio/mpeg":
		return ".mp3"
	default:
		return ".bin"
	}
}
