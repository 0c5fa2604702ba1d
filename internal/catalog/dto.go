package catalog

// pageResponse is the envelope shared by trending, popular and search endpoints
type pageResponse struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Results      []resultEntry `json:"results"`
}

// resultEntry is one element of "results". Movies carry title, shows and
// people carry name; poster_path may be null.
type resultEntry struct {
	ID          int     `json:"id"`
	Title       string  `json:"title,omitempty"`
	Name        string  `json:"name,omitempty"`
	MediaType   string  `json:"media_type,omitempty"`
	PosterPath  *string `json:"poster_path"`
	ProfilePath *string `json:"profile_path,omitempty"` // people only
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// detailsResponse covers GET /movie/{id} and GET /tv/{id}
type detailsResponse struct {
	ID              int     `json:"id"`
	Title           string  `json:"title,omitempty"`
	Name            string  `json:"name,omitempty"`
	Overview        string  `json:"overview"`
	Tagline         string  `json:"tagline,omitempty"`
	PosterPath      *string `json:"poster_path"`
	ReleaseDate     string  `json:"release_date,omitempty"`
	FirstAirDate    string  `json:"first_air_date,omitempty"`
	VoteAverage     float64 `json:"vote_average"`
	Runtime         int     `json:"runtime,omitempty"`
	NumberOfSeasons int     `json:"number_of_seasons,omitempty"`
	Genres          []genre `json:"genres"`
}
