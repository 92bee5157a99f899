package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mmcdole/walls/internal/domain"
)

// DefaultTimeout bounds a single image download
const DefaultTimeout = 5 * time.Minute

// Downloader saves wallpaper images into a directory, one file per catalog ID
type Downloader struct {
	dir        string
	httpClient *http.Client
	progress   io.Writer // nil disables the progress bar
	logger     *slog.Logger
}

// NewDownloader creates a downloader writing into dir.
// Progress is rendered to progress when it is non-nil.
func NewDownloader(dir string, httpClient *http.Client, progress io.Writer, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Downloader{
		dir:        dir,
		httpClient: httpClient,
		progress:   progress,
		logger:     logger,
	}
}

// Download fetches url into <dir>/<id> and returns the final path.
// The file only appears under its final name once fully written.
func (d *Downloader) Download(ctx context.Context, url, id string) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", fmt.Errorf("%w: invalid wallpaper id %q", domain.ErrPersistence, id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", domain.ErrTransport, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: %s", domain.ErrTransport, url, resp.Status)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	finalPath := filepath.Join(d.dir, id)
	partPath := finalPath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	written, copyErr := io.Copy(d.sink(out, resp.ContentLength, id), resp.Body)
	if copyErr != nil && !errors.Is(copyErr, domain.ErrPersistence) {
		copyErr = fmt.Errorf("%w: reading body: %w", domain.ErrTransport, copyErr)
	}
	if copyErr == nil {
		copyErr = persistErr(out.Sync())
	}
	if closeErr := out.Close(); copyErr == nil {
		copyErr = persistErr(closeErr)
	}
	if copyErr != nil {
		os.Remove(partPath)
		return "", copyErr
	}

	if err := os.Rename(partPath, finalPath); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	d.logger.Debug("wallpaper downloaded", "id", id, "path", finalPath, "bytes", written)
	return finalPath, nil
}

// sink wraps the file so that read failures and write failures are told apart
func (d *Downloader) sink(out *os.File, size int64, id string) io.Writer {
	var w io.Writer = fileWriter{out}
	if d.progress != nil && size > 0 {
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(d.progress),
			progressbar.OptionSetDescription(fmt.Sprintf("downloading %s", id)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
		w = io.MultiWriter(w, bar)
	}
	return w
}

// fileWriter tags local write errors so io.Copy's result can be classified
type fileWriter struct {
	f *os.File
}

func (w fileWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	return n, persistErr(err)
}

func persistErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
