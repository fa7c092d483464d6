package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movieverse/internal/models"
)

func row(id int, title, date string) models.MovieRow {
	return models.MovieRow{ID: id, Title: title, ReleaseDate: date}
}

func titles(rows []models.MovieRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func ids(rows []models.MovieRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSortTopRatedIsIdentity(t *testing.T) {
	inputs := [][]models.MovieRow{
		{row(1, "b", "2001-01-01"), row(2, "a", "1999-01-01"), row(3, "c", "")},
		{row(3, "c", ""), row(1, "b", "2001-01-01"), row(2, "a", "1999-01-01")},
		{},
	}
	for _, in := range inputs {
		assert.Equal(t, in, Sort(in, models.SortTopRated))
	}
}

func TestSortAlphaAsc(t *testing.T) {
	in := []models.MovieRow{
		row(1, "alien", ""),
		row(2, "Zodiac", ""),
		row(3, "Amelie", ""),
		row(4, "Zodiac", ""),
		row(5, "12 Angry Men", ""),
	}

	out := Sort(in, models.SortAlphaAsc)
	assert.Equal(t, []string{"12 Angry Men", "Amelie", "Zodiac", "Zodiac", "alien"}, titles(out))
	assert.Equal(t, []int{5, 3, 2, 4, 1}, ids(out), "equal titles keep input order")

	assert.Equal(t, out, Sort(out, models.SortAlphaAsc), "idempotent")
	assert.Equal(t, "alien", in[0].Title, "input untouched")
}

func TestSortLatest(t *testing.T) {
	in := []models.MovieRow{
		row(1, "old", "1972-03-14"),
		row(2, "undated", ""),
		row(3, "new", "2019-05-30"),
		row(4, "tie-a", "2000-01-01"),
		row(5, "undated-2", ""),
		row(6, "tie-b", "2000-01-01"),
	}

	out := Sort(in, models.SortLatest)
	assert.Equal(t, []int{3, 4, 6, 1, 2, 5}, ids(out), "descending, stable, empty dates last")
}
