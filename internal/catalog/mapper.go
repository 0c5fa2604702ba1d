package catalog

import "github.com/mmcdole/flick/internal/domain"

// mapPage converts a page envelope to a domain.ResultPage. Entries without an
// id cannot be keyed in a grid and are dropped; order is preserved.
func mapPage(resp pageResponse, fallbackType string) *domain.ResultPage {
	page := &domain.ResultPage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      make([]domain.ContentItem, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		if r.ID == 0 {
			continue
		}
		page.Results = append(page.Results, mapResult(r, fallbackType))
	}
	return page
}

// mapResult converts one result entry. Endpoints scoped to a single type
// (e.g. /tv/popular) omit media_type, so fallbackType fills it in.
func mapResult(r resultEntry, fallbackType string) domain.ContentItem {
	mediaType := r.MediaType
	if mediaType == "" {
		mediaType = fallbackType
	}
	return domain.ContentItem{
		ID:         r.ID,
		Title:      r.Title,
		Name:       r.Name,
		MediaType:  mediaType,
		PosterPath: deref(r.PosterPath),
	}
}

func mapDetails(d detailsResponse, mediaType string) *domain.Details {
	genres := make([]domain.Genre, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return &domain.Details{
		ID:              d.ID,
		MediaType:       mediaType,
		Title:           d.Title,
		Name:            d.Name,
		Overview:        d.Overview,
		Tagline:         d.Tagline,
		PosterPath:      deref(d.PosterPath),
		ReleaseDate:     d.ReleaseDate,
		FirstAirDate:    d.FirstAirDate,
		VoteAverage:     d.VoteAverage,
		Runtime:         d.Runtime,
		NumberOfSeasons: d.NumberOfSeasons,
		Genres:          genres,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
