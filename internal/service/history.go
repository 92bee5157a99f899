package service

import (
	"log/slog"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/walls/internal/domain"
)

// historyReader is the read side of domain.HistoryStore
type historyReader interface {
	List(limit int) ([]domain.HistoryEntry, error)
}

// HistoryQuery narrows a history listing
type HistoryQuery struct {
	Limit  int    // <= 0 for all entries
	Filter string // Fuzzy text filter over id, query and tags; results ranked by score
	Tag    string // Keep entries with a tag fuzzily containing this
}

// historyIndex implements sahilm/fuzzy.Source over history entries
type historyIndex struct {
	entries []domain.HistoryEntry
	text    []string // Pre-computed lowercase search text
}

func (idx *historyIndex) String(i int) string { return idx.text[i] }

func (idx *historyIndex) Len() int { return len(idx.entries) }

func newHistoryIndex(entries []domain.HistoryEntry) *historyIndex {
	text := make([]string, len(entries))
	for i, e := range entries {
		text[i] = strings.ToLower(strings.Join(append([]string{e.ID, e.Query}, e.Tags...), " "))
	}
	return &historyIndex{entries: entries, text: text}
}

// HistoryService lists previously applied wallpapers
type HistoryService struct {
	store  historyReader
	logger *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(store historyReader, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{
		store:  store,
		logger: logger,
	}
}

// Recent returns history entries newest first, or by match quality when a
// text filter is set
func (s *HistoryService) Recent(q HistoryQuery) ([]domain.HistoryEntry, error) {
	filtering := q.Filter != "" || q.Tag != ""

	limit := q.Limit
	if filtering {
		// Filters run over the whole history, the limit applies afterwards
		limit = 0
	}

	entries, err := s.store.List(limit)
	if err != nil {
		s.logger.Error("failed to list history", "error", err)
		return nil, err
	}

	if q.Tag != "" {
		entries = filterByTag(entries, q.Tag)
	}

	if q.Filter != "" {
		matches := fuzzy.FindFrom(strings.ToLower(q.Filter), newHistoryIndex(entries))
		ranked := make([]domain.HistoryEntry, len(matches))
		for i, m := range matches {
			ranked[i] = entries[m.Index]
		}
		entries = ranked
	}

	if filtering && q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	s.logger.Debug("history listed", "count", len(entries), "filter", q.Filter, "tag", q.Tag)
	return entries, nil
}

func filterByTag(entries []domain.HistoryEntry, tag string) []domain.HistoryEntry {
	var kept []domain.HistoryEntry
	for _, e := range entries {
		for _, t := range e.Tags {
			if lfuzzy.MatchFold(tag, t) {
				kept = append(kept, e)
				break
			}
		}
	}
	return kept
}
