package models

import (
	"fmt"
	"strconv"
)

// GenreAll is the synthetic genre meaning "no genre constraint".
const GenreAll = "All"

// SortKey selects the post-fetch ordering of a listing.
type SortKey string

const (
	SortTopRated SortKey = "top_rated"
	SortLatest   SortKey = "latest"
	SortAlphaAsc SortKey = "a_z"
)

// SortOptions lists the sort keys in dropdown order.
var SortOptions = []SortKey{SortTopRated, SortLatest, SortAlphaAsc}

// Label returns the display label of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortLatest:
		return "Latest"
	case SortAlphaAsc:
		return "A-Z"
	default:
		return "Top Rated"
	}
}

// ParseSortKey accepts wire names and display labels. Anything else falls
// back to SortTopRated.
func ParseSortKey(s string) SortKey {
	switch s {
	case string(SortLatest), "Latest":
		return SortLatest
	case string(SortAlphaAsc), "A-Z":
		return SortAlphaAsc
	default:
		return SortTopRated
	}
}

// QueryInput is the browser state for one render cycle.
type QueryInput struct {
	SearchText    string  `json:"search"`
	SelectedGenre string  `json:"genre"`
	SortKey       SortKey `json:"sort"`
	Page          int     `json:"page"`
}

// DefaultQueryInput is the state of a fresh session.
func DefaultQueryInput() QueryInput {
	return QueryInput{
		SelectedGenre: GenreAll,
		SortKey:       SortTopRated,
		Page:          1,
	}
}

// MovieRow is the canonical listing row, whichever endpoint produced it.
type MovieRow struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	PosterURL   string  `json:"poster_url,omitempty"`
	DetailLink  string  `json:"detail_link"`
}

// Trailer lookup outcomes.
const (
	TrailerFound       = "found"
	TrailerNone        = "none"
	TrailerUnavailable = "unavailable"
)

// MovieDetail is the response shape for the detail view.
type MovieDetail struct {
	MovieRow
	RuntimeMinutes int      `json:"runtime_minutes"`
	RuntimeText    string   `json:"runtime"`
	Genres         []string `json:"genres"`
	TrailerURL     string   `json:"trailer_url,omitempty"`
	TrailerStatus  string   `json:"trailer_status"`
	Notice         string   `json:"notice,omitempty"`
}

// BrowseResult is one evaluated listing cycle.
type BrowseResult struct {
	Mode        string     `json:"mode"`
	Query       QueryInput `json:"query"`
	Genres      []string   `json:"genres"`
	SortOptions []SortKey  `json:"sort_options"`
	Results     []MovieRow `json:"results"`
	TotalPages  int        `json:"total_pages"`
	Empty       bool       `json:"empty"`
	Message     string     `json:"message,omitempty"`
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	YouTubeWatchURL   = "https://www.youtube.com/watch?v="
	EmptyResultText   = "Nothing to show."
)

// DetailLink builds the link that reopens the browser on a movie's detail view.
func DetailLink(id int) string {
	return "?selected_movie_id=" + strconv.Itoa(id)
}

// FormatRuntime renders minutes as "X hr Y min".
func FormatRuntime(minutes int) string {
	return fmt.Sprintf("%d hr %d min", minutes/60, minutes%60)
}
