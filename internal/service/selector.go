package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/walls/internal/domain"
)

// SelectorService picks the first admissible wallpaper from one search page
type SelectorService struct {
	catalog  domain.CatalogRepository
	observer domain.ProgressObserver
	logger   *slog.Logger
}

// NewSelectorService creates a new selector service
func NewSelectorService(catalog domain.CatalogRepository, observer domain.ProgressObserver, logger *slog.Logger) *SelectorService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &SelectorService{
		catalog:  catalog,
		observer: observer,
		logger:   logger,
	}
}

// SelectWallpaper searches once and returns the first candidate whose tags
// pass the policy, in server order. Tags are fetched one candidate at a time
// and iteration stops at the first match. Any catalog error aborts the run.
func (s *SelectorService) SelectWallpaper(ctx context.Context, policy domain.SearchPolicy, res domain.Resolution) (domain.MatchResult, error) {
	s.observer.OnProgress(domain.Progress{Step: domain.StepSearching})

	candidates, err := s.catalog.Search(ctx, res, policy.ResolutionMode, policy.Query)
	if err != nil {
		s.logger.Error("search failed", "error", err, "resolution", res.String(), "query", policy.Query)
		return domain.NotFound, err
	}

	s.logger.Info("search complete",
		"results", len(candidates),
		"resolution", res.String(),
		"mode", policy.ResolutionMode,
		"query", policy.Query,
	)

	for i, candidate := range candidates {
		s.observer.OnProgress(domain.Progress{
			Step:      domain.StepEvaluating,
			Candidate: candidate.PageURL,
			Index:     i + 1,
			Total:     len(candidates),
		})

		tags, err := s.catalog.FetchTags(ctx, candidate.ID)
		if err != nil {
			s.logger.Error("failed to fetch tags", "error", err, "id", candidate.ID)
			return domain.NotFound, err
		}

		if tag, term, rejected := policy.Rejection(tags); rejected {
			s.logger.Info("wallpaper does not match", "url", candidate.PageURL, "tag", tag, "excluded", term)
			continue
		}

		s.logger.Info("wallpaper matches", "url", candidate.PageURL, "tags", []string(tags))
		return domain.MatchResult{Candidate: candidate, Tags: tags, Found: true}, nil
	}

	s.logger.Warn("no matching wallpaper found", "evaluated", len(candidates))
	return domain.NotFound, nil
}
