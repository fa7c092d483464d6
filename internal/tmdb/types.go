package tmdb

// ListResponse is the paged envelope shared by top_rated, search/movie and
// discover/movie.
type ListResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is a listing entry. PosterPath is a pointer because TMDB sends
// null for titles without artwork.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
}

// MovieDetail is the /movie/{id} payload.
type MovieDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
}

// Genre is a genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the genre/movie/list response.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// Video is one entry of /movie/{id}/videos.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoListResponse is the /movie/{id}/videos response.
type VideoListResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
