package browse

import (
	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

// Normalize maps upstream listing entries to canonical rows, keeping their
// order. A null or empty poster path yields no poster URL.
func Normalize(raw []tmdb.Movie) []models.MovieRow {
	rows := make([]models.MovieRow, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, models.MovieRow{
			ID:          m.ID,
			Title:       m.Title,
			Overview:    m.Overview,
			Rating:      m.VoteAverage,
			ReleaseDate: m.ReleaseDate,
			PosterURL:   PosterURL(m.PosterPath),
			DetailLink:  models.DetailLink(m.ID),
		})
	}
	return rows
}

// PosterURL returns the w500 poster URL, or "" when there is no poster.
func PosterURL(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return models.TMDBImageBaseW500 + *path
}
