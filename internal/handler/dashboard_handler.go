package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"movieverse/internal/dashboard"
)

// DashboardHandler serves the IMDb top-1000 dashboard.
type DashboardHandler struct {
	store *dashboard.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store *dashboard.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// DashboardResponse is the dashboard payload.
type DashboardResponse struct {
	Filter       dashboard.Filter     `json:"filter"`
	GenreOptions []string             `json:"genre_options"`
	Table        []dashboard.TableRow `json:"table"`
	Stats        dashboard.Stats      `json:"stats"`
	Visual       dashboard.Visual     `json:"visual"`
	ReleaseTrend []dashboard.Bin      `json:"release_trend"`
	LoadedAt     time.Time            `json:"loaded_at"`
}

// Dashboard filters the dataset and returns table, stats and chart series.
// @Summary Dashboard
// @Tags dashboard
// @Produce json
// @Param genre query []string false "Genres to include (repeatable); none means all"
// @Param min_rating query number false "Minimum IMDb rating (5-10)" default(7.0)
// @Param year_from query int false "Released in or after (1950-2022)" default(2000)
// @Param chart query string false "Visual" Enums(bar,pie) default(bar)
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c fiber.Ctx) error {
	f := dashboard.Filter{
		Genres:    queryGenres(c),
		MinRating: fiber.Query(c, "min_rating", dashboard.DefaultMinRating),
		YearFrom:  fiber.Query(c, "year_from", dashboard.DefaultYearFrom),
	}

	summary := h.store.Summarize(f)
	return c.JSON(DashboardResponse{
		Filter:       summary.Filter,
		GenreOptions: h.store.Genres(),
		Table:        summary.Table,
		Stats:        summary.Stats,
		Visual:       summary.Visual(c.Query("chart")),
		ReleaseTrend: summary.ReleaseTrend,
		LoadedAt:     h.store.LoadedAt(),
	})
}

// queryGenres collects repeated and comma separated genre parameters.
func queryGenres(c fiber.Ctx) []string {
	genres := make([]string, 0)
	for _, raw := range c.Request().URI().QueryArgs().PeekMulti("genre") {
		for _, g := range strings.Split(string(raw), ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
	}
	return genres
}
