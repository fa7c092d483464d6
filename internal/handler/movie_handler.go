package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"movieverse/internal/browse"
	"movieverse/internal/models"
	"movieverse/internal/service"
	"movieverse/internal/session"
	"movieverse/internal/tmdb"
)

// MovieHandler handles the movie browser endpoints.
type MovieHandler struct {
	svc        *service.MovieService
	sessions   session.Store
	pager      browse.Pager
	sessionTTL time.Duration
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService, sessions session.Store, pager browse.Pager, sessionTTL time.Duration) *MovieHandler {
	return &MovieHandler{svc: svc, sessions: sessions, pager: pager, sessionTTL: sessionTTL}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movieverse",
	})
}

// Genres returns the genre dropdown options.
// @Summary List genres
// @Tags movies
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 502 {object} ErrorResponse
// @Router /genres [get]
func (h *MovieHandler) Genres(c fiber.Ctx) error {
	names, err := h.svc.GenreNames(c.Context())
	if err != nil {
		return writeError(c, err, "failed to retrieve genres")
	}
	return c.JSON(fiber.Map{"genres": names})
}

// Browse runs one browser cycle for the caller's session.
// @Summary Browse movies
// @Tags movies
// @Produce json
// @Param search query string false "Search text; non-empty overrides genre"
// @Param genre query string false "Genre name" default(All)
// @Param sort query string false "Sort key" Enums(top_rated,latest,a_z)
// @Param nav query string false "Pagination" Enums(prev,next)
// @Param selected_movie_id query int false "Open the detail view for a movie"
// @Success 200 {object} models.BrowseResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /browse [get]
func (h *MovieHandler) Browse(c fiber.Ctx) error {
	args := c.Request().URI().QueryArgs()

	if raw := c.Query("selected_movie_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, service.ErrMalformedOverride, "")
		}
		return h.detail(c, id)
	}

	sid := h.sessionID(c)
	state, ok, err := h.sessions.Load(c.Context(), sid)
	if err != nil {
		slog.Warn("failed to load session, starting fresh", "session", sid, "error", err)
	}
	if !ok {
		state = models.DefaultQueryInput()
	}

	var ev browse.Event
	if args.Has("search") {
		v := c.Query("search")
		ev.Search = &v
	}
	if args.Has("genre") {
		v := c.Query("genre")
		ev.Genre = &v
	}
	if args.Has("sort") {
		v := models.ParseSortKey(c.Query("sort"))
		ev.Sort = &v
	}
	ev.Nav = browse.ParseNav(c.Query("nav"))

	state = h.pager.Step(state, ev)
	result, err := h.svc.Browse(c.Context(), state)
	if err != nil {
		// the session keeps its last good state
		return writeError(c, err, "failed to retrieve movies")
	}

	if err := h.sessions.Save(c.Context(), sid, state); err != nil {
		slog.Warn("failed to save session", "session", sid, "error", err)
	}
	return c.JSON(result)
}

// GetMovieDetail returns detailed info for a single movie.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} models.MovieDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieDetail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid movie ID",
		})
	}
	return h.detail(c, id)
}

func (h *MovieHandler) detail(c fiber.Ctx, id int) error {
	detail, err := h.svc.GetDetail(c.Context(), id)
	if err != nil {
		return writeError(c, err, "failed to retrieve movie details")
	}
	return c.JSON(detail)
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none or a forged one.
func (h *MovieHandler) sessionID(c fiber.Ctx) string {
	if sid := c.Cookies(session.CookieName); session.ValidID(sid) {
		return sid
	}

	sid := session.NewID()
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sid
}

// writeError maps service errors to HTTP statuses. fallback is the message
// for unexpected failures.
func writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrMalformedOverride):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
	case errors.Is(err, browse.ErrUnknownGenre):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "unknown genre"})
	case errors.Is(err, tmdb.ErrInvalidPage):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid page"})
	case errors.Is(err, tmdb.ErrTransport):
		slog.Error("upstream request failed", "path", c.Path(), "status", tmdb.StatusCode(err), "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: fallback})
	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: fallback})
	}
}
