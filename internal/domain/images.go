package domain

import "strings"

const (
	// DefaultImageBaseURL is the catalog's poster CDN
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	// DefaultPosterSize is the size token used for grid cards
	DefaultPosterSize = "w500"

	// PlaceholderPoster is the local asset shown when an item has no poster
	PlaceholderPoster = "/placeholder.jpg"
)

// ImageConfig builds poster URLs against a CDN base and size token
type ImageConfig struct {
	BaseURL    string
	PosterSize string
}

// DefaultImageConfig returns the catalog CDN with the w500 poster size
func DefaultImageConfig() ImageConfig {
	return ImageConfig{BaseURL: DefaultImageBaseURL, PosterSize: DefaultPosterSize}
}

// PosterURL returns <base>/<size>/<poster_path> for the item, or the
// placeholder path when the item has no poster.
func (c ImageConfig) PosterURL(item ContentItem) string {
	if !item.HasPoster() {
		return PlaceholderPoster
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	size := c.PosterSize
	if size == "" {
		size = DefaultPosterSize
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(item.PosterPath, "/")
}
