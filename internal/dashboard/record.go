// Package dashboard summarizes the IMDb top-1000 dataset: filtering, a
// preview table, quick stats and chart-ready series.
package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Record is one cleaned dataset row.
type Record struct {
	Title         string   `json:"title"`
	Director      string   `json:"director"`
	ReleaseYear   int      `json:"release_year"`
	Runtime       *int     `json:"runtime"`
	Genre         string   `json:"genre"`
	Rating        float64  `json:"rating"`
	Metascore     *float64 `json:"metascore"`
	GrossMillions *float64 `json:"gross_m"`
}

var columnAliases = map[string]string{
	"series_title":  "title",
	"released_year": "release_year",
}

var digits = regexp.MustCompile(`\d+`)

// NormalizeHeader trims a column name, replaces spaces with underscores,
// lower-cases it and applies the dataset's renames.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", "_"))
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

// ParseRuntime keeps the first run of digits ("148 min" -> 148).
func ParseRuntime(s string) *int {
	m := digits.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// LoadFile reads and cleans the dataset at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Parse reads CSV rows from r. Rows without a release year, rating or genre
// are dropped.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeHeader(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{"release_year", "rating", "genre"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0, 1000)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		year, ok := optionalFloat(field(row, "release_year"))
		if !ok {
			continue
		}
		rating, ok := optionalFloat(field(row, "rating"))
		if !ok {
			continue
		}
		genre := field(row, "genre")
		if genre == "" {
			continue
		}

		records = append(records, Record{
			Title:         field(row, "title"),
			Director:      field(row, "director"),
			ReleaseYear:   int(year),
			Runtime:       ParseRuntime(field(row, "runtime")),
			Genre:         genre,
			Rating:        rating,
			Metascore:     floatPtr(field(row, "metascore")),
			GrossMillions: floatPtr(field(row, "gross(m)")),
		})
	}
	return records, nil
}

func optionalFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func floatPtr(s string) *float64 {
	v, ok := optionalFloat(s)
	if !ok {
		return nil
	}
	return &v
}
