package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"movieverse/internal/metrics"
)

// Operation names, used for logs, metrics and HTTPError.Op.
const (
	OpTopRated    = "top_rated"
	OpSearch      = "search"
	OpDiscover    = "discover"
	OpMovieDetail = "movie_detail"
	OpMovieVideos = "movie_videos"
	OpGenres      = "genres"
)

// Client is the TMDB API client.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	http     *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL, language string, timeout time.Duration) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Params holds the operation-specific query parameters. The credential and
// language tag are added by the client on every call.
type Params struct {
	Page       int    `url:"page,omitempty"`
	Query      string `url:"query,omitempty"`
	WithGenres int    `url:"with_genres,omitempty"`
}

type requestParams struct {
	APIKey   string `url:"api_key"`
	Language string `url:"language"`
	Params
}

// ---- Client Methods ----

// TopRated fetches one page of /movie/top_rated.
func (c *Client) TopRated(ctx context.Context, page int) (*ListResponse, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	var result ListResponse
	if err := c.Fetch(ctx, OpTopRated, "/movie/top_rated", Params{Page: page}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMovies fetches one page of free-text search results.
func (c *Client) SearchMovies(ctx context.Context, q string, page int) (*ListResponse, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	var result ListResponse
	if err := c.Fetch(ctx, OpSearch, "/search/movie", Params{Page: page, Query: q}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DiscoverByGenre fetches one page of discover/movie constrained to a genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) (*ListResponse, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	var result ListResponse
	if err := c.Fetch(ctx, OpDiscover, "/discover/movie", Params{Page: page, WithGenres: genreID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieDetail fetches detailed movie info from TMDB.
func (c *Client) MovieDetail(ctx context.Context, id int) (*MovieDetail, error) {
	var result MovieDetail
	if err := c.Fetch(ctx, OpMovieDetail, fmt.Sprintf("/movie/%d", id), Params{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieVideos fetches the video listing attached to a movie.
func (c *Client) MovieVideos(ctx context.Context, id int) (*VideoListResponse, error) {
	var result VideoListResponse
	if err := c.Fetch(ctx, OpMovieVideos, fmt.Sprintf("/movie/%d/videos", id), Params{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genres fetches all movie genres from TMDB.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var result GenreListResponse
	if err := c.Fetch(ctx, OpGenres, "/genre/movie/list", Params{}, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}

// Fetch issues one GET against path and decodes the JSON body into dst.
// A non-200 answer is returned as *HTTPError; nothing is retried.
func (c *Client) Fetch(ctx context.Context, op, path string, p Params, dst any) error {
	values, err := query.Values(requestParams{APIKey: c.apiKey, Language: c.language, Params: p})
	if err != nil {
		return fmt.Errorf("%w: encode %s params: %v", ErrTransport, op, err)
	}

	slog.Debug("fetching TMDB", "operation", op, "path", path, "page", p.Page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", ErrTransport, op, err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(op, 0, started)
		return fmt.Errorf("%w: %s request failed: %v", ErrTransport, op, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(op, resp.StatusCode, started)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &HTTPError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrTransport, op, err)
	}
	return nil
}
