package service

import (
	"context"
	"fmt"
	"log/slog"

	"movieverse/internal/browse"
	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

// MetadataClient is the subset of the TMDB client the service needs.
type MetadataClient interface {
	TopRated(ctx context.Context, page int) (*tmdb.ListResponse, error)
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.ListResponse, error)
	DiscoverByGenre(ctx context.Context, genreID, page int) (*tmdb.ListResponse, error)
	MovieDetail(ctx context.Context, id int) (*tmdb.MovieDetail, error)
	MovieVideos(ctx context.Context, id int) (*tmdb.VideoListResponse, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

// MovieService runs browse and detail cycles against TMDB.
type MovieService struct {
	client MetadataClient
	genres *browse.GenreCache
}

// NewMovieService creates a new MovieService. The genre vocabulary is
// fetched lazily through a cache shared by every session.
func NewMovieService(client MetadataClient) *MovieService {
	return &MovieService{
		client: client,
		genres: browse.NewGenreCache(client.Genres),
	}
}

// GenreNames returns the genre dropdown options, "All" first.
func (s *MovieService) GenreNames(ctx context.Context) ([]string, error) {
	idx, err := s.genres.Get(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Names(), nil
}

// Browse evaluates one listing cycle for in: route, fetch, normalize, sort.
// A page past the last one is not an error; it comes back empty.
func (s *MovieService) Browse(ctx context.Context, in models.QueryInput) (*models.BrowseResult, error) {
	// Search does not need the vocabulary, but the dropdown does, so it is
	// loaded on every path.
	genres, err := s.genres.Get(ctx)
	if err != nil {
		return nil, err
	}

	op, err := browse.Route(in, genres)
	if err != nil {
		return nil, err
	}

	resp, err := s.execute(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("%s page %d: %w", op.Mode(), op.PageNumber(), err)
	}

	rows := browse.Sort(browse.Normalize(resp.Results), in.SortKey)

	slog.Debug("browse cycle", "mode", op.Mode(), "page", op.PageNumber(), "rows", len(rows))

	result := &models.BrowseResult{
		Mode:        op.Mode(),
		Query:       in,
		Genres:      genres.Names(),
		SortOptions: models.SortOptions,
		Results:     rows,
		TotalPages:  resp.TotalPages,
		Empty:       len(rows) == 0,
	}
	if result.Empty {
		result.Message = models.EmptyResultText
	}
	return result, nil
}

func (s *MovieService) execute(ctx context.Context, op browse.Operation) (*tmdb.ListResponse, error) {
	switch op := op.(type) {
	case browse.Search:
		return s.client.SearchMovies(ctx, op.Query, op.Page)
	case browse.DiscoverByGenre:
		return s.client.DiscoverByGenre(ctx, op.GenreID, op.Page)
	case browse.TopRated:
		return s.client.TopRated(ctx, op.Page)
	default:
		return nil, fmt.Errorf("unsupported operation %T", op)
	}
}
