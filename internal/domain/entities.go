package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolutionMode selects how the catalog filters by screen size
type ResolutionMode string

const (
	// ResolutionExact only returns wallpapers with exactly the target size
	ResolutionExact ResolutionMode = "exact"
	// ResolutionAtLeast returns wallpapers at least as large as the target size
	ResolutionAtLeast ResolutionMode = "atleast"
)

// ParseResolutionMode converts a config value to a ResolutionMode.
// An empty value selects ResolutionExact.
func ParseResolutionMode(s string) (ResolutionMode, error) {
	switch ResolutionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ResolutionExact:
		return ResolutionExact, nil
	case ResolutionAtLeast, "at-least", "at_least":
		return ResolutionAtLeast, nil
	default:
		return "", fmt.Errorf("%w: unknown resolution mode %q", ErrConfiguration, s)
	}
}

// Resolution is a screen size in pixels
type Resolution struct {
	Width  int
	Height int
}

// Valid returns true if both dimensions are positive
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// String renders the resolution as WxH, the form the catalog expects
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses "WxH" (also accepts "W x H" and "W*H")
func ParseResolution(s string) (Resolution, error) {
	normalized := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	normalized = strings.ReplaceAll(normalized, "*", "x")

	w, h, ok := strings.Cut(normalized, "x")
	if !ok {
		return Resolution{}, fmt.Errorf("%w: invalid resolution %q, expected WIDTHxHEIGHT", ErrConfiguration, s)
	}

	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	res := Resolution{Width: width, Height: height}
	if errW != nil || errH != nil || !res.Valid() {
		return Resolution{}, fmt.Errorf("%w: invalid resolution %q, expected WIDTHxHEIGHT", ErrConfiguration, s)
	}
	return res, nil
}

// SearchPolicy is the user's query and tag exclusion list.
// NewSearchPolicy trims and lowercases exclusions; matching is
// case-insensitive either way.
type SearchPolicy struct {
	Query          string         // Free-text query, empty for none
	ExcludeTags    []string       // Substrings that disqualify a tag
	ResolutionMode ResolutionMode // Exact or at-least resolution filtering
}

// NewSearchPolicy builds a SearchPolicy, lowercasing and trimming exclusions.
// Blank exclusion entries are dropped, since an empty substring would reject every tag.
func NewSearchPolicy(query string, excludeTags []string, mode ResolutionMode) SearchPolicy {
	excludes := make([]string, 0, len(excludeTags))
	for _, tag := range excludeTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		excludes = append(excludes, tag)
	}
	if mode == "" {
		mode = ResolutionExact
	}
	return SearchPolicy{
		Query:          strings.TrimSpace(query),
		ExcludeTags:    excludes,
		ResolutionMode: mode,
	}
}

// Admits returns true if no tag contains any excluded substring.
// A candidate without tags is always admitted.
func (p SearchPolicy) Admits(tags TagSet) bool {
	_, _, rejected := p.Rejection(tags)
	return !rejected
}

// Rejection reports the first tag hit by an exclusion term, and that term.
// Both sides are compared lowercased, whichever way the policy was built.
func (p SearchPolicy) Rejection(tags TagSet) (tag, term string, rejected bool) {
	for _, t := range tags {
		lower := strings.ToLower(t)
		for _, exclude := range p.ExcludeTags {
			if strings.Contains(lower, strings.ToLower(exclude)) {
				return t, exclude, true
			}
		}
	}
	return "", "", false
}

// Candidate is one wallpaper from a search result page
type Candidate struct {
	ID          string // Catalog identifier, unique per wallpaper
	PageURL     string // Human-facing wallpaper page
	DownloadURL string // Direct link to the full image
	Resolution  string // e.g. "3840x2160", informational
	FileType    string // e.g. "image/jpeg", informational
}

// TagSet is the ordered list of lowercase tag names for a candidate
type TagSet []string

// MatchResult is the outcome of one selection run.
// Found is false when no candidate on the page was admissible.
type MatchResult struct {
	Candidate Candidate
	Tags      TagSet
	Found     bool
}

// NotFound is the MatchResult for an exhausted page
var NotFound = MatchResult{}

// HistoryEntry records a wallpaper that was installed
type HistoryEntry struct {
	ID          string    `json:"id"`
	PageURL     string    `json:"page_url"`
	DownloadURL string    `json:"download_url"`
	Path        string    `json:"path"`
	Tags        []string  `json:"tags"`
	Query       string    `json:"query,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
}
