package domain

import "fmt"

// Media type tags returned by the catalog. The set is open; anything else is
// passed through untouched.
const (
	MediaTypeMovie  = "movie"
	MediaTypeTV     = "tv"
	MediaTypePerson = "person"
)

// ContentItem is a single movie, show or person record from the catalog
type ContentItem struct {
	ID         int    // Unique within a single result set
	Title      string // Movies carry a title
	Name       string // Shows and people carry a name
	MediaType  string // "movie", "tv", "person", ...
	PosterPath string // Relative image path, empty when the catalog has none
}

// DisplayTitle returns Title when present, otherwise Name. Items with neither
// yield an empty label.
func (c ContentItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// HasPoster reports whether the catalog supplied a poster image
func (c ContentItem) HasPoster() bool {
	return c.PosterPath != ""
}

// ResultPage is one page of listing or search results
type ResultPage struct {
	Page         int
	TotalPages   int
	TotalResults int
	Results      []ContentItem
}

// Genre is a catalog genre tag
type Genre struct {
	ID   int
	Name string
}

// Details is the full record for a single movie or show
type Details struct {
	ID              int
	MediaType       string
	Title           string
	Name            string
	Overview        string
	Tagline         string
	PosterPath      string
	ReleaseDate     string // Movies
	FirstAirDate    string // Shows
	VoteAverage     float64
	Runtime         int // Minutes, movies only
	NumberOfSeasons int // Shows only
	Genres          []Genre
}

// DisplayTitle returns Title when present, otherwise Name
func (d Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Year returns the release or first air year, or "" when unknown
func (d Details) Year() string {
	date := d.ReleaseDate
	if date == "" {
		date = d.FirstAirDate
	}
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// FormattedRuntime returns the runtime as "1h 52m", or "" when unknown
func (d Details) FormattedRuntime() string {
	if d.Runtime <= 0 {
		return ""
	}
	h := d.Runtime / 60
	m := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
