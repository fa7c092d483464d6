package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieverse/internal/models"
	"movieverse/internal/tmdb"
)

func TestGenreIndex(t *testing.T) {
	idx := NewGenreIndex([]tmdb.Genre{
		{ID: 28, Name: "Action"},
		{ID: 35, Name: "Comedy"},
		{ID: 99, Name: "Action"},
		{ID: 1, Name: models.GenreAll},
	})

	assert.Equal(t, []string{"All", "Action", "Comedy"}, idx.Names())
	assert.Equal(t, 2, idx.Len())

	id, ok := idx.Lookup("Action")
	assert.True(t, ok)
	assert.Equal(t, 28, id, "first occurrence wins")

	_, ok = idx.Lookup(models.GenreAll)
	assert.False(t, ok, "All is never stored")
}

func TestNilGenreIndex(t *testing.T) {
	var idx *GenreIndex
	assert.Equal(t, []string{"All"}, idx.Names())
	_, ok := idx.Lookup("Action")
	assert.False(t, ok)
}

func TestGenreCacheLoadsOnce(t *testing.T) {
	calls := 0
	cache := NewGenreCache(func(ctx context.Context) ([]tmdb.Genre, error) {
		calls++
		return []tmdb.Genre{{ID: 35, Name: "Comedy"}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, err := cache.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 1, idx.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestGenreCacheDoesNotKeepFailures(t *testing.T) {
	fail := true
	calls := 0
	cache := NewGenreCache(func(ctx context.Context) ([]tmdb.Genre, error) {
		calls++
		if fail {
			return nil, errors.New("boom")
		}
		return []tmdb.Genre{{ID: 18, Name: "Drama"}}, nil
	})

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	fail = false
	idx, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Drama"}, idx.Names())

	_, _ = cache.Get(context.Background())
	assert.Equal(t, 2, calls)
}
