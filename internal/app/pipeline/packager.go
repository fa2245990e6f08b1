package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/repository"
	"video2broll/internal/app/storage"
)

// ClipSource identifies where to download one selected clip from. It
// accepts both the flat URI form and the structured descriptor form on
// the wire.
type ClipSource struct {
	Link               string   `json:"link"`
	DownloadCandidates []string `json:"download_candidates"`
}

// UnmarshalJSON accepts either a bare URI string or an object carrying
// a link and/or download candidates.
func (c *ClipSource) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var uri string
		if err := json.Unmarshal(trimmed, &uri); err != nil {
			return err
		}
		c.Link = uri
		return nil
	}
	type alias ClipSource
	var decoded alias
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*c = ClipSource(decoded)
	return nil
}

// DownloadURI resolves the URI to fetch, or "" when the clip has no
// usable source.
func (c ClipSource) DownloadURI() string {
	if c.Link != "" {
		return c.Link
	}
	if len(c.DownloadCandidates) > 0 {
		return c.DownloadCandidates[0]
	}
	return ""
}

// PackageBuilder fetches selected clips, bundles them into a ZIP
// archive, and publishes the archive to durable storage.
type PackageBuilder struct {
	dao     repository.MediaRecordDAO
	storage storage.ObjectStorage
	client  *http.Client
	logger  *slog.Logger
}

// NewPackageBuilder creates the packaging stage.
func NewPackageBuilder(dao repository.MediaRecordDAO, store storage.ObjectStorage, logger *slog.Logger) *PackageBuilder {
	return &PackageBuilder{
		dao:     dao,
		storage: store,
		client:  &http.Client{Timeout: 5 * time.Minute},
		logger:  logger,
	}
}

// Build assembles and publishes the archive, then persists the
// direct-download link. A clip that cannot be resolved or fetched is
// logged and skipped without renumbering the remaining entries; only
// archive publication failures abort the build, and those leave the
// stored package link untouched.
func (b *PackageBuilder) Build(ctx context.Context, recordID string, clips []ClipSource) (link string, err error) {
	start := time.Now()
	defer func() { observeStage("package", start, err) }()

	if len(clips) == 0 {
		return "", apperrors.InvalidArgument("no clips selected for packaging")
	}

	record, err := b.dao.GetByID(recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFound("media record", recordID)
		}
		return "", err
	}

	var buffer bytes.Buffer
	archive := zip.NewWriter(&buffer)
	packaged := 0
	for i, clip := range clips {
		uri := clip.DownloadURI()
		if uri == "" {
			itemsSkipped.WithLabelValues("package").Inc()
			b.logger.Warn("clip has no download candidates, skipping",
				"media_id", record.ID,
				"clip_index", i+1,
			)
			continue
		}

		data, fetchErr := b.fetchClip(ctx, uri)
		if fetchErr != nil {
			itemsSkipped.WithLabelValues("package").Inc()
			b.logger.Warn("clip fetch failed, skipping",
				"media_id", record.ID,
				"clip_index", i+1,
				"error", fetchErr,
			)
			continue
		}

		entry, entryErr := archive.Create(fmt.Sprintf("clip_%d%s", i+1, clipExtension(uri)))
		if entryErr != nil {
			err = entryErr
			return "", err
		}
		if _, err = entry.Write(data); err != nil {
			return "", err
		}
		packaged++
	}
	if err = archive.Close(); err != nil {
		return "", err
	}

	archivePath := ArchivePathFor(record.FileName, record.ID)
	if _, err = b.storage.Put(ctx, archivePath, bytes.NewReader(buffer.Bytes())); err != nil {
		return "", err
	}
	link, err = b.storage.CreateOrGetSharedLink(ctx, archivePath)
	if err != nil {
		return "", err
	}
	link = b.storage.DirectDownloadLink(link)

	if err = b.dao.SetPackageLink(record.ID, link); err != nil {
		return "", err
	}

	b.logger.Info("package published",
		"media_id", record.ID,
		"path", archivePath,
		"selected", len(clips),
		"packaged", packaged,
		"bytes", buffer.Len(),
	)
	return link, nil
}

func (b *PackageBuilder) fetchClip(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("clip fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// clipExtension picks the archive entry extension from the download
// URI, defaulting to .mp4.
func clipExtension(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ".mp4"
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	switch ext {
	case ".mp4", ".mov", ".webm", ".m4v":
		return ext
	default:
		return ".mp4"
	}
}

// ArchivePathFor derives the published archive path from the source
// file's base name. The record id disambiguates identical file names
// across records.
func ArchivePathFor(fileName, recordID string) string {
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	if base == "" || base == "." {
		base = recordID
	}
	return fmt.Sprintf("/broll_packages/%s_broll.zip", base)
}
