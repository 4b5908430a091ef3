package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Downloader fetches a dataset archive with a single HTTP GET.
// There is no retry and no integrity check; failures surface immediately.
type Downloader struct {
	client *http.Client
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	Path  string
	Bytes int64
	MIME  string
}

// NewDownloader creates a downloader with the given request timeout (30s when zero).
func NewDownloader(timeout time.Duration) *Downloader {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Download streams url into dest. The body is written to a temporary file in
// the destination directory and renamed into place once fully received.
func (d *Downloader) Download(ctx context.Context, url, dest string) (DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return DownloadResult{}, fmt.Errorf("download %s failed: %s", url, resp.Status)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DownloadResult{}, err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(dest)+"."+uuid.NewString()+".part")
	out, err := os.Create(tmp)
	if err != nil {
		return DownloadResult{}, err
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return DownloadResult{}, fmt.Errorf("write %s: %w", dest, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return DownloadResult{}, err
	}

	res := DownloadResult{Path: dest, Bytes: n}
	if mt, err := mimetype.DetectFile(dest); err == nil {
		res.MIME = mt.String()
	}
	return res, nil
}
