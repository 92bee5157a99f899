package wallhaven

import (
	"strings"

	"github.com/mmcdole/walls/internal/domain"
)

// MapCandidates converts search entries to domain candidates, preserving order
func MapCandidates(wallpapers []Wallpaper) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(wallpapers))
	for _, w := range wallpapers {
		candidates = append(candidates, mapCandidate(w))
	}
	return candidates
}

func mapCandidate(w Wallpaper) domain.Candidate {
	return domain.Candidate{
		ID:          w.ID,
		PageURL:     w.URL,
		DownloadURL: w.Path,
		Resolution:  w.Resolution,
		FileType:    w.FileType,
	}
}

// MapTags converts tags to a lowercase TagSet, preserving order
func MapTags(tags []Tag) domain.TagSet {
	names := make(domain.TagSet, 0, len(tags))
	for _, t := range tags {
		names = append(names, strings.ToLower(t.Name))
	}
	return names
}
