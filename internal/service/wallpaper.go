package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/walls/internal/domain"
)

// downloader fetches an image to a local file (consumer-defined interface)
type downloader interface {
	Download(ctx context.Context, url, id string) (string, error)
}

// installer sets the desktop background (consumer-defined interface)
type installer interface {
	SetWallpaper(ctx context.Context, path string, persist bool) error
}

// WallpaperService runs selection, download, install and history recording
type WallpaperService struct {
	selector   *SelectorService
	downloader downloader
	installer  installer
	history    domain.HistoryStore // nil disables history
	observer   domain.ProgressObserver
	persist    bool
	logger     *slog.Logger
	now        func() time.Time
}

// NewWallpaperService creates a new wallpaper service
func NewWallpaperService(
	selector *SelectorService,
	downloader downloader,
	installer installer,
	history domain.HistoryStore,
	observer domain.ProgressObserver,
	persist bool,
	logger *slog.Logger,
) *WallpaperService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &WallpaperService{
		selector:   selector,
		downloader: downloader,
		installer:  installer,
		history:    history,
		observer:   observer,
		persist:    persist,
		logger:     logger,
		now:        time.Now,
	}
}

// Apply selects a wallpaper, downloads it and installs it.
// Returns domain.ErrNoMatch if the page had no admissible candidate.
func (s *WallpaperService) Apply(ctx context.Context, policy domain.SearchPolicy, res domain.Resolution) (*domain.HistoryEntry, error) {
	result, err := s.selector.SelectWallpaper(ctx, policy, res)
	if err != nil {
		return nil, err
	}
	if !result.Found {
		return nil, domain.ErrNoMatch
	}

	candidate := result.Candidate

	s.observer.OnProgress(domain.Progress{Step: domain.StepDownloading, Candidate: candidate.PageURL})
	path, err := s.downloader.Download(ctx, candidate.DownloadURL, candidate.ID)
	if err != nil {
		s.logger.Error("failed to download wallpaper", "error", err, "id", candidate.ID, "url", candidate.DownloadURL)
		return nil, fmt.Errorf("failed to download %s: %w", candidate.ID, err)
	}

	s.observer.OnProgress(domain.Progress{Step: domain.StepInstalling, Candidate: candidate.PageURL})
	if err := s.installer.SetWallpaper(ctx, path, s.persist); err != nil {
		s.logger.Error("failed to set wallpaper", "error", err, "path", path)
		return nil, fmt.Errorf("failed to set wallpaper: %w", err)
	}

	entry := &domain.HistoryEntry{
		ID:          candidate.ID,
		PageURL:     candidate.PageURL,
		DownloadURL: candidate.DownloadURL,
		Path:        path,
		Tags:        result.Tags,
		Query:       policy.Query,
		AppliedAt:   s.now(),
	}

	if s.history != nil {
		// The wallpaper is already installed, so a history failure is not fatal
		if err := s.history.Record(*entry); err != nil {
			s.logger.Warn("failed to record history", "error", err, "id", entry.ID)
		}
	}

	s.observer.OnProgress(domain.Progress{Step: domain.StepDone, Candidate: candidate.PageURL})
	s.logger.Info("wallpaper applied", "id", entry.ID, "url", entry.PageURL, "path", path, "persist", s.persist)

	return entry, nil
}
