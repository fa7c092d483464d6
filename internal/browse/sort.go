package browse

import (
	"sort"

	"movieverse/internal/models"
)

// Sort returns rows ordered for key; the input slice is not modified.
//
// SortTopRated keeps upstream order. SortLatest puts rows without a release
// date last.
func Sort(rows []models.MovieRow, key models.SortKey) []models.MovieRow {
	out := make([]models.MovieRow, len(rows))
	copy(out, rows)

	switch key {
	case models.SortAlphaAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	case models.SortLatest:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].ReleaseDate, out[j].ReleaseDate
			if a == "" || b == "" {
				return a != "" && b == ""
			}
			// ISO dates compare correctly as strings.
			return a > b
		})
	}
	return out
}
