package domain

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks -source=repositories.go CatalogRepository

// CatalogRepository provides access to the remote wallpaper catalog
type CatalogRepository interface {
	// Search returns one randomized page of wallpapers matching the resolution
	// and optional free-text query, in the order the server returned them
	Search(ctx context.Context, res Resolution, mode ResolutionMode, query string) ([]Candidate, error)

	// FetchTags returns the lowercase tag names for a wallpaper
	FetchTags(ctx context.Context, id string) (TagSet, error)
}
