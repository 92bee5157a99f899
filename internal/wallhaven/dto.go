package wallhaven

import (
	"encoding/json"
	"strconv"
)

// SearchResponse is the envelope returned by /search
type SearchResponse struct {
	Data *[]Wallpaper `json:"data"`
	Meta Meta         `json:"meta"`
}

// Meta carries pagination info for a search.
// per_page is sent as a string by some API versions, hence flexInt.
type Meta struct {
	CurrentPage flexInt         `json:"current_page"`
	LastPage    flexInt         `json:"last_page"`
	PerPage     flexInt         `json:"per_page"`
	Total       flexInt         `json:"total"`
	Query       json.RawMessage `json:"query,omitempty"` // string, or {id, tag} for id: queries
	Seed        *string         `json:"seed,omitempty"`  // only set for sorting=random
}

// Wallpaper is a search result entry
type Wallpaper struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	ShortURL   string   `json:"short_url,omitempty"`
	Views      int      `json:"views,omitempty"`
	Favorites  int      `json:"favorites,omitempty"`
	Source     string   `json:"source,omitempty"`
	Purity     string   `json:"purity,omitempty"`   // sfw, sketchy, nsfw
	Category   string   `json:"category,omitempty"` // general, anime, people
	DimensionX int      `json:"dimension_x,omitempty"`
	DimensionY int      `json:"dimension_y,omitempty"`
	Resolution string   `json:"resolution,omitempty"`
	Ratio      string   `json:"ratio,omitempty"`
	FileSize   int64    `json:"file_size,omitempty"`
	FileType   string   `json:"file_type,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Path       string   `json:"path"`
	Thumbs     Thumbs   `json:"thumbs,omitempty"`
}

// Thumbs holds thumbnail URLs
type Thumbs struct {
	Large    string `json:"large,omitempty"`
	Original string `json:"original,omitempty"`
	Small    string `json:"small,omitempty"`
}

// DetailResponse is the envelope returned by /w/{id}
type DetailResponse struct {
	Data *WallpaperDetail `json:"data"`
}

// WallpaperDetail is a wallpaper with its uploader and tags
type WallpaperDetail struct {
	Wallpaper
	Uploader *Uploader `json:"uploader,omitempty"`
	Tags     *[]Tag    `json:"tags"`
}

// Uploader identifies who uploaded a wallpaper
type Uploader struct {
	Username string `json:"username"`
	Group    string `json:"group,omitempty"`
}

// Tag is a wallpaper tag
type Tag struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Alias      string `json:"alias,omitempty"`
	CategoryID int    `json:"category_id,omitempty"`
	Category   string `json:"category,omitempty"`
	Purity     string `json:"purity,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// errorResponse is returned alongside non-2xx statuses
type errorResponse struct {
	Error string `json:"error"`
}

// flexInt decodes a JSON number or numeric string
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
