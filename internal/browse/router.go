// Package browse holds the movie browser pipeline that sits between the
// session state and the TMDB client: routing a QueryInput to exactly one
// upstream listing, paging, normalizing and ordering the rows.
package browse

import (
	"errors"
	"fmt"
	"strings"

	"movieverse/internal/models"
)

// ErrUnknownGenre is returned when the selected genre is not in the index.
var ErrUnknownGenre = errors.New("browse: unknown genre")

// Operation is the closed set of upstream listings. Exactly one is chosen
// per cycle by Route.
type Operation interface {
	// Mode is the stable name of the listing ("search", "discover", "top_rated").
	Mode() string
	PageNumber() int
	isOperation()
}

// TopRated lists /movie/top_rated.
type TopRated struct {
	Page int
}

// Search lists free-text search results. The upstream search endpoint takes
// no genre constraint.
type Search struct {
	Query string
	Page  int
}

// DiscoverByGenre lists discover/movie constrained to one genre.
type DiscoverByGenre struct {
	GenreID int
	Page    int
}

func (TopRated) Mode() string        { return "top_rated" }
func (Search) Mode() string          { return "search" }
func (DiscoverByGenre) Mode() string { return "discover" }

func (o TopRated) PageNumber() int        { return o.Page }
func (o Search) PageNumber() int          { return o.Page }
func (o DiscoverByGenre) PageNumber() int { return o.Page }

func (TopRated) isOperation()        {}
func (Search) isOperation()          {}
func (DiscoverByGenre) isOperation() {}

// Route picks the upstream listing for in. Precedence, first match wins:
// non-empty search text, then a concrete genre, then top rated.
func Route(in models.QueryInput, genres *GenreIndex) (Operation, error) {
	page := max(in.Page, 1)

	if q := strings.TrimSpace(in.SearchText); q != "" {
		return Search{Query: q, Page: page}, nil
	}

	if in.SelectedGenre != "" && in.SelectedGenre != models.GenreAll {
		id, ok := genres.Lookup(in.SelectedGenre)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, in.SelectedGenre)
		}
		return DiscoverByGenre{GenreID: id, Page: page}, nil
	}

	return TopRated{Page: page}, nil
}
