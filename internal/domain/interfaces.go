package domain

import "context"

// Catalog is the read-only metadata API the views fetch from.
// Each call is independent: no caching, retry or pagination.
type Catalog interface {
	// FetchTrending returns this week's trending movies, shows and people
	FetchTrending(ctx context.Context) (*ResultPage, error)

	// FetchPopularShows returns the first page of popular TV shows
	FetchPopularShows(ctx context.Context) (*ResultPage, error)

	// Search runs a multi search; a blank query is sent as-is
	Search(ctx context.Context, query string) (*ResultPage, error)

	// FetchDetails looks up a single item by id and media type
	FetchDetails(ctx context.Context, id, mediaType string) (*Details, error)
}
