package browse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

// GenreIndex maps genre display names to TMDB ids. It never contains
// models.GenreAll and is read-only once built.
type GenreIndex struct {
	names []string
	ids   map[string]int
}

// NewGenreIndex builds an index in upstream order. A repeated name keeps
// its first id.
func NewGenreIndex(genres []tmdb.Genre) *GenreIndex {
	idx := &GenreIndex{
		names: make([]string, 0, len(genres)),
		ids:   make(map[string]int, len(genres)),
	}
	for _, g := range genres {
		if g.Name == models.GenreAll {
			continue
		}
		if _, dup := idx.ids[g.Name]; dup {
			continue
		}
		idx.ids[g.Name] = g.ID
		idx.names = append(idx.names, g.Name)
	}
	return idx
}

// Lookup returns the id for name.
func (g *GenreIndex) Lookup(name string) (int, bool) {
	if g == nil {
		return 0, false
	}
	id, ok := g.ids[name]
	return id, ok
}

// Names returns the dropdown options: "All" followed by upstream names.
func (g *GenreIndex) Names() []string {
	out := []string{models.GenreAll}
	if g == nil {
		return out
	}
	return append(out, g.names...)
}

// Len is the number of real genres.
func (g *GenreIndex) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}

// GenreLoader fetches the genre vocabulary.
type GenreLoader func(ctx context.Context) ([]tmdb.Genre, error)

// GenreCache is a read-through cache of the genre vocabulary. The first
// successful load is kept for the life of the process; there is no
// invalidation. A failed load is not cached.
type GenreCache struct {
	mu    sync.Mutex
	load  GenreLoader
	index *GenreIndex
}

// NewGenreCache creates a cache around load.
func NewGenreCache(load GenreLoader) *GenreCache {
	return &GenreCache{load: load}
}

// Get returns the cached index, loading it on first use.
func (c *GenreCache) Get(ctx context.Context) (*GenreIndex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil {
		return c.index, nil
	}

	genres, err := c.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	c.index = NewGenreIndex(genres)
	slog.Info("genre vocabulary loaded", "count", c.index.Len())
	return c.index, nil
}
