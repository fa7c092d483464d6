package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL+"/", "en-US", 5*time.Second)
}

func TestTopRated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/top_rated", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.False(t, r.URL.Query().Has("query"))
		assert.False(t, r.URL.Query().Has("with_genres"))

		fmt.Fprint(w, `{"page":2,"total_pages":9,"results":[
			{"id":278,"title":"The Shawshank Redemption","overview":"o","vote_average":8.7,"release_date":"1994-09-23","poster_path":"/p.jpg"},
			{"id":1,"title":"No Poster","overview":"","vote_average":7.1,"release_date":"","poster_path":null}
		]}`)
	})

	resp, err := client.TopRated(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 9, resp.TotalPages)
	assert.Equal(t, "The Shawshank Redemption", resp.Results[0].Title)
	require.NotNil(t, resp.Results[0].PosterPath)
	assert.Equal(t, "/p.jpg", *resp.Results[0].PosterPath)
	assert.Nil(t, resp.Results[1].PosterPath)
}

func TestSearchAndDiscoverParams(t *testing.T) {
	t.Run("search sends query, no genre", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search/movie", r.URL.Path)
			assert.Equal(t, "the matrix", r.URL.Query().Get("query"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.False(t, r.URL.Query().Has("with_genres"))
			fmt.Fprint(w, `{"results":[]}`)
		})

		resp, err := client.SearchMovies(context.Background(), "the matrix", 1)
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
	})

	t.Run("discover sends with_genres", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/discover/movie", r.URL.Path)
			assert.Equal(t, "35", r.URL.Query().Get("with_genres"))
			assert.Equal(t, "3", r.URL.Query().Get("page"))
			fmt.Fprint(w, `{"results":[{"id":5,"title":"Funny"}]}`)
		})

		resp, err := client.DiscoverByGenre(context.Background(), 35, 3)
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Funny", resp.Results[0].Title)
	})
}

func TestInvalidPageIsRejectedBeforeRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.TopRated(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = client.SearchMovies(context.Background(), "x", -1)
	assert.ErrorIs(t, err, ErrInvalidPage)
	_, err = client.DiscoverByGenre(context.Background(), 35, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.False(t, called)
}

func TestNonOKStatusIsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status_message":"Invalid API key"}`)
	})

	_, err := client.TopRated(context.Background(), 1)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, OpTopRated, httpErr.Op)
	assert.Contains(t, httpErr.Body, "Invalid API key")
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestNotFoundMatchesErrNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/999", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.MovieDetail(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient("k", url, "en-US", time.Second)
	_, err := client.Genres(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 0, StatusCode(err))
}

func TestMalformedBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	})

	_, err := client.TopRated(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestDetailVideosAndGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/550":
			fmt.Fprint(w, `{"id":550,"title":"Fight Club","runtime":139,"genres":[{"id":18,"name":"Drama"}]}`)
		case "/movie/550/videos":
			fmt.Fprint(w, `{"id":550,"results":[{"key":"abc","site":"YouTube","type":"Trailer"}]}`)
		case "/genre/movie/list":
			fmt.Fprint(w, `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	detail, err := client.MovieDetail(ctx, 550)
	require.NoError(t, err)
	assert.Equal(t, 139, detail.Runtime)
	assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}}, detail.Genres)

	videos, err := client.MovieVideos(ctx, 550)
	require.NoError(t, err)
	require.Len(t, videos.Results, 1)
	assert.Equal(t, "abc", videos.Results[0].Key)

	genres, err := client.Genres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}, genres)
}
