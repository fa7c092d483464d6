package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"movieverse/internal/browse"
	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

// ErrMalformedOverride means a selected movie id does not resolve to a movie.
var ErrMalformedOverride = errors.New("movie not found")

const (
	noTrailerNotice          = "No YouTube trailer found."
	trailerUnavailableNotice = "Failed to load trailer."
)

// GetDetail fetches one movie and resolves its trailer. Detail failures are
// returned; a failed video listing only marks the trailer unavailable.
func (s *MovieService) GetDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", ErrMalformedOverride, id)
	}

	movie, err := s.client.MovieDetail(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d: %v", ErrMalformedOverride, id, err)
		}
		return nil, fmt.Errorf("movie detail %d: %w", id, err)
	}

	detail := &models.MovieDetail{
		MovieRow: models.MovieRow{
			ID:          movie.ID,
			Title:       movie.Title,
			Overview:    movie.Overview,
			Rating:      movie.VoteAverage,
			ReleaseDate: movie.ReleaseDate,
			PosterURL:   browse.PosterURL(movie.PosterPath),
			DetailLink:  models.DetailLink(movie.ID),
		},
		RuntimeMinutes: max(movie.Runtime, 0),
		RuntimeText:    models.FormatRuntime(max(movie.Runtime, 0)),
		Genres:         make([]string, 0, len(movie.Genres)),
	}
	for _, g := range movie.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}

	videos, err := s.client.MovieVideos(ctx, id)
	if err != nil {
		slog.Warn("trailer lookup failed", "id", id, "error", err)
		detail.TrailerStatus = models.TrailerUnavailable
		detail.Notice = trailerUnavailableNotice
		return detail, nil
	}

	if key, ok := TrailerKey(videos.Results); ok {
		detail.TrailerURL = models.YouTubeWatchURL + key
		detail.TrailerStatus = models.TrailerFound
	} else {
		detail.TrailerStatus = models.TrailerNone
		detail.Notice = noTrailerNotice
	}
	return detail, nil
}

// TrailerKey returns the key of the first YouTube trailer in upstream order.
func TrailerKey(videos []tmdb.Video) (string, bool) {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return v.Key, true
		}
	}
	return "", false
}
