package dashboard

import (
	"math"
	"sort"

	"movieverse/internal/models"
)

// Filter bounds and defaults.
const (
	DefaultMinRating = 7.0
	MinRatingFloor   = 5.0
	MinRatingCeil    = 10.0
	DefaultYearFrom  = 2000
	YearFromFloor    = 1950
	YearFromCeil     = 2022

	previewRows  = 20
	topRatedRows = 20
	trendBins    = 15
)

// Chart kinds for the visual selector.
const (
	ChartBar = "bar"
	ChartPie = "pie"
)

// Filter selects dashboard rows. An empty Genres matches every genre.
type Filter struct {
	Genres    []string `json:"genres"`
	MinRating float64  `json:"min_rating"`
	YearFrom  int      `json:"year_from"`
}

// DefaultFilter is the filter of a fresh dashboard.
func DefaultFilter() Filter {
	return Filter{Genres: []string{}, MinRating: DefaultMinRating, YearFrom: DefaultYearFrom}
}

// Clamp keeps the numeric bounds inside the slider ranges.
func (f Filter) Clamp() Filter {
	f.MinRating = math.Min(math.Max(f.MinRating, MinRatingFloor), MinRatingCeil)
	f.YearFrom = min(max(f.YearFrom, YearFromFloor), YearFromCeil)
	if f.Genres == nil {
		f.Genres = []string{}
	}
	return f
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	if r.Rating < f.MinRating || r.ReleaseYear < f.YearFrom {
		return false
	}
	if len(f.Genres) == 0 {
		return true
	}
	for _, g := range f.Genres {
		if g == r.Genre {
			return true
		}
	}
	return false
}

// ParseChart maps the chart parameter to ChartBar or ChartPie.
func ParseChart(s string) string {
	if s == ChartPie {
		return ChartPie
	}
	return ChartBar
}

// TableRow is a preview table row with runtime formatted for display.
type TableRow struct {
	Title         string   `json:"title"`
	Director      string   `json:"director"`
	ReleaseYear   int      `json:"release_year"`
	Runtime       string   `json:"runtime"`
	Genre         string   `json:"genre"`
	Rating        float64  `json:"rating"`
	Metascore     *float64 `json:"metascore"`
	GrossMillions *float64 `json:"gross_m"`
}

// Stats are the quick stats over the filtered rows. AvgRating is nil when
// nothing matched.
type Stats struct {
	Total      int      `json:"total"`
	AvgRating  *float64 `json:"avg_rating"`
	AvgRuntime string   `json:"avg_runtime"`
}

// BarPoint is one bar of the highest rated chart.
type BarPoint struct {
	Title       string  `json:"title"`
	Rating      float64 `json:"rating"`
	Genre       string  `json:"genre"`
	ReleaseYear int     `json:"release_year"`
}

// PieSlice is one genre share.
type PieSlice struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Bin is one histogram bucket covering [Start, End).
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Visual is the chart picked by the selector.
type Visual struct {
	Kind   string     `json:"kind"`
	Bars   []BarPoint `json:"bars,omitempty"`
	Slices []PieSlice `json:"slices,omitempty"`
}

// Summary is the full dashboard computation for one filter.
type Summary struct {
	Filter         Filter     `json:"filter"`
	Table          []TableRow `json:"table"`
	Stats          Stats      `json:"stats"`
	TopRated       []BarPoint `json:"top_rated"`
	GenreBreakdown []PieSlice `json:"genre_breakdown"`
	ReleaseTrend   []Bin      `json:"release_trend"`
}

// Visual returns the bar or pie series for chart.
func (s *Summary) Visual(chart string) Visual {
	if ParseChart(chart) == ChartPie {
		return Visual{Kind: ChartPie, Slices: s.GenreBreakdown}
	}
	return Visual{Kind: ChartBar, Bars: s.TopRated}
}

// Genres returns the distinct genres of records, sorted.
func Genres(records []Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Genre]; ok {
			continue
		}
		seen[r.Genre] = struct{}{}
		out = append(out, r.Genre)
	}
	sort.Strings(out)
	return out
}

// Summarize filters records and builds every dashboard section.
func Summarize(records []Record, f Filter) *Summary {
	f = f.Clamp()

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}

	return &Summary{
		Filter:         f,
		Table:          table(filtered),
		Stats:          stats(filtered),
		TopRated:       topRated(filtered),
		GenreBreakdown: genreBreakdown(filtered),
		ReleaseTrend:   releaseTrend(filtered),
	}
}

func runtimeText(minutes *int) string {
	if minutes == nil {
		return "N/A"
	}
	return models.FormatRuntime(*minutes)
}

func table(rows []Record) []TableRow {
	n := min(len(rows), previewRows)
	out := make([]TableRow, 0, n)
	for _, r := range rows[:n] {
		out = append(out, TableRow{
			Title:         r.Title,
			Director:      r.Director,
			ReleaseYear:   r.ReleaseYear,
			Runtime:       runtimeText(r.Runtime),
			Genre:         r.Genre,
			Rating:        r.Rating,
			Metascore:     r.Metascore,
			GrossMillions: r.GrossMillions,
		})
	}
	return out
}

func stats(rows []Record) Stats {
	s := Stats{Total: len(rows), AvgRuntime: "N/A"}
	if len(rows) == 0 {
		return s
	}

	var ratingSum float64
	var runtimeSum, runtimeN int
	for _, r := range rows {
		ratingSum += r.Rating
		if r.Runtime != nil {
			runtimeSum += *r.Runtime
			runtimeN++
		}
	}

	avg := math.Round(ratingSum/float64(len(rows))*100) / 100
	s.AvgRating = &avg
	if runtimeN > 0 {
		mean := int(float64(runtimeSum) / float64(runtimeN))
		s.AvgRuntime = runtimeText(&mean)
	}
	return s
}

func topRated(rows []Record) []BarPoint {
	sorted := make([]Record, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	n := min(len(sorted), topRatedRows)
	out := make([]BarPoint, 0, n)
	for _, r := range sorted[:n] {
		out = append(out, BarPoint{Title: r.Title, Rating: r.Rating, Genre: r.Genre, ReleaseYear: r.ReleaseYear})
	}
	return out
}

func genreBreakdown(rows []Record) []PieSlice {
	index := make(map[string]int)
	out := make([]PieSlice, 0)
	for _, r := range rows {
		i, ok := index[r.Genre]
		if !ok {
			i = len(out)
			index[r.Genre] = i
			out = append(out, PieSlice{Genre: r.Genre})
		}
		out[i].Count++
	}
	return out
}

// releaseTrend buckets release years into trendBins equal-width bins
// spanning the observed range. The last bin is closed.
func releaseTrend(rows []Record) []Bin {
	if len(rows) == 0 {
		return []Bin{}
	}

	lo, hi := rows[0].ReleaseYear, rows[0].ReleaseYear
	for _, r := range rows[1:] {
		lo = min(lo, r.ReleaseYear)
		hi = max(hi, r.ReleaseYear)
	}
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}
	width := span / trendBins

	bins := make([]Bin, trendBins)
	for i := range bins {
		bins[i].Start = float64(lo) + float64(i)*width
		bins[i].End = float64(lo) + float64(i+1)*width
	}
	for _, r := range rows {
		i := int(float64(r.ReleaseYear-lo) / width)
		bins[min(i, trendBins-1)].Count++
	}
	return bins
}
