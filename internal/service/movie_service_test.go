package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieverse/internal/browse"
	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

// fakeClient records which listing was requested and answers from fixtures.
type fakeClient struct {
	calls      []string
	list       []tmdb.Movie
	listErr    error
	genres     []tmdb.Genre
	genreErr   error
	detail     *tmdb.MovieDetail
	detailErr  error
	videos     []tmdb.Video
	videosErr  error
	genreCalls int
}

func (f *fakeClient) listing(call string) (*tmdb.ListResponse, error) {
	f.calls = append(f.calls, call)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &tmdb.ListResponse{Results: f.list, TotalPages: 5}, nil
}

func (f *fakeClient) TopRated(_ context.Context, page int) (*tmdb.ListResponse, error) {
	return f.listing(fmt.Sprintf("top_rated(%d)", page))
}

func (f *fakeClient) SearchMovies(_ context.Context, q string, page int) (*tmdb.ListResponse, error) {
	return f.listing(fmt.Sprintf("search(%s,%d)", q, page))
}

func (f *fakeClient) DiscoverByGenre(_ context.Context, genreID, page int) (*tmdb.ListResponse, error) {
	return f.listing(fmt.Sprintf("discover(%d,%d)", genreID, page))
}

func (f *fakeClient) MovieDetail(_ context.Context, id int) (*tmdb.MovieDetail, error) {
	f.calls = append(f.calls, fmt.Sprintf("detail(%d)", id))
	return f.detail, f.detailErr
}

func (f *fakeClient) MovieVideos(_ context.Context, id int) (*tmdb.VideoListResponse, error) {
	f.calls = append(f.calls, fmt.Sprintf("videos(%d)", id))
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	return &tmdb.VideoListResponse{ID: id, Results: f.videos}, nil
}

func (f *fakeClient) Genres(_ context.Context) ([]tmdb.Genre, error) {
	f.genreCalls++
	return f.genres, f.genreErr
}

func strPtr(s string) *string { return &s }

func TestBrowseRoutesDiscoverByGenre(t *testing.T) {
	client := &fakeClient{genres: []tmdb.Genre{{ID: 35, Name: "Comedy"}}}
	svc := NewMovieService(client)

	in := models.QueryInput{SearchText: "", SelectedGenre: "Comedy", SortKey: models.SortLatest, Page: 1}
	result, err := svc.Browse(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []string{"discover(35,1)"}, client.calls)
	assert.Equal(t, "discover", result.Mode)
	assert.Equal(t, []string{"All", "Comedy"}, result.Genres)
}

func TestBrowseSearchIgnoresGenre(t *testing.T) {
	client := &fakeClient{genres: []tmdb.Genre{{ID: 35, Name: "Comedy"}}}
	svc := NewMovieService(client)

	in := models.QueryInput{SearchText: "heat", SelectedGenre: "Comedy", SortKey: models.SortTopRated, Page: 2}
	result, err := svc.Browse(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, []string{"search(heat,2)"}, client.calls)
	assert.Equal(t, "search", result.Mode)
}

func TestBrowseNormalizesAndSorts(t *testing.T) {
	client := &fakeClient{list: []tmdb.Movie{
		{ID: 1, Title: "Casablanca", VoteAverage: 8.2, ReleaseDate: "1942-11-26", PosterPath: strPtr("/c.jpg")},
		{ID: 2, Title: "Alien", VoteAverage: 8.1, ReleaseDate: "1979-05-25", PosterPath: nil},
	}}
	svc := NewMovieService(client)

	result, err := svc.Browse(context.Background(), models.QueryInput{SelectedGenre: models.GenreAll, SortKey: models.SortAlphaAsc, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"top_rated(1)"}, client.calls)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Alien", result.Results[0].Title)
	assert.Empty(t, result.Results[0].PosterURL)
	assert.Equal(t, models.TMDBImageBaseW500+"/c.jpg", result.Results[1].PosterURL)
	assert.Equal(t, 5, result.TotalPages)
	assert.False(t, result.Empty)
}

func TestBrowseEmptyResultIsNotAnError(t *testing.T) {
	svc := NewMovieService(&fakeClient{})

	result, err := svc.Browse(context.Background(), models.QueryInput{SelectedGenre: models.GenreAll, Page: 500})
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Equal(t, models.EmptyResultText, result.Message)
	assert.NotNil(t, result.Results)
}

func TestBrowseErrors(t *testing.T) {
	t.Run("transport failure", func(t *testing.T) {
		upstream := &tmdb.HTTPError{Op: tmdb.OpTopRated, StatusCode: http.StatusServiceUnavailable}
		svc := NewMovieService(&fakeClient{listErr: upstream})

		_, err := svc.Browse(context.Background(), models.DefaultQueryInput())
		assert.ErrorIs(t, err, tmdb.ErrTransport)
		assert.Equal(t, http.StatusServiceUnavailable, tmdb.StatusCode(err))
	})

	t.Run("unknown genre", func(t *testing.T) {
		client := &fakeClient{genres: []tmdb.Genre{{ID: 35, Name: "Comedy"}}}
		svc := NewMovieService(client)

		_, err := svc.Browse(context.Background(), models.QueryInput{SelectedGenre: "Western", Page: 1})
		assert.ErrorIs(t, err, browse.ErrUnknownGenre)
		assert.Empty(t, client.calls)
	})

	t.Run("genre vocabulary failure", func(t *testing.T) {
		svc := NewMovieService(&fakeClient{genreErr: errors.New("down")})

		_, err := svc.Browse(context.Background(), models.DefaultQueryInput())
		assert.Error(t, err)
	})
}

func TestGenreVocabularyFetchedOnce(t *testing.T) {
	client := &fakeClient{genres: []tmdb.Genre{{ID: 18, Name: "Drama"}}}
	svc := NewMovieService(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Browse(ctx, models.DefaultQueryInput())
		require.NoError(t, err)
	}
	names, err := svc.GenreNames(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"All", "Drama"}, names)
	assert.Equal(t, 1, client.genreCalls)
}
