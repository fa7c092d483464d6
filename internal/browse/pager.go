package browse

import "movieverse/internal/models"

// Nav is a pagination button press.
type Nav int

const (
	NavNone Nav = iota
	NavPrevious
	NavNext
)

// ParseNav maps the "nav" request parameter to a Nav.
func ParseNav(s string) Nav {
	switch s {
	case "prev", "previous":
		return NavPrevious
	case "next":
		return NavNext
	default:
		return NavNone
	}
}

// Event is one user interaction. Nil fields leave the matching input as is.
type Event struct {
	Search *string
	Genre  *string
	Sort   *models.SortKey
	Nav    Nav
}

// Pager applies events to a QueryInput. It holds policy only; the state
// itself is passed in and returned.
type Pager struct {
	// ResetOnFilterChange moves back to page 1 when search, genre or sort
	// actually change.
	ResetOnFilterChange bool
}

// Step returns the state after ev. Edits are applied before navigation.
// Previous on page 1 does nothing; Next always advances.
func (p Pager) Step(cur models.QueryInput, ev Event) models.QueryInput {
	next := cur
	next.Page = max(next.Page, 1)
	if next.SelectedGenre == "" {
		next.SelectedGenre = models.GenreAll
	}
	if next.SortKey == "" {
		next.SortKey = models.SortTopRated
	}

	changed := false
	if ev.Search != nil && *ev.Search != next.SearchText {
		next.SearchText = *ev.Search
		changed = true
	}
	if ev.Genre != nil {
		genre := *ev.Genre
		if genre == "" {
			genre = models.GenreAll
		}
		if genre != next.SelectedGenre {
			next.SelectedGenre = genre
			changed = true
		}
	}
	if ev.Sort != nil && *ev.Sort != next.SortKey {
		next.SortKey = *ev.Sort
		changed = true
	}
	if changed && p.ResetOnFilterChange {
		next.Page = 1
	}

	switch ev.Nav {
	case NavPrevious:
		if next.Page > 1 {
			next.Page--
		}
	case NavNext:
		next.Page++
	}
	return next
}
