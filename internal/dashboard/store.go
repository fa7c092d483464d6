package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"movieverse/internal/metrics"
)

// Source produces the full dataset.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// CSVSource loads the dataset from a CSV file.
type CSVSource struct {
	Path string
}

// Load implements Source.
func (s CSVSource) Load(_ context.Context) ([]Record, error) {
	return LoadFile(s.Path)
}

// Store holds the current dataset. Reads and reloads may run concurrently.
type Store struct {
	source Source

	mu       sync.RWMutex
	records  []Record
	loadedAt time.Time
}

// NewStore creates a Store and loads the dataset once.
func NewStore(ctx context.Context, source Source) (*Store, error) {
	s := &Store{source: source}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the dataset from the source. On failure the previous
// dataset stays in place.
func (s *Store) Reload(ctx context.Context) error {
	records, err := s.source.Load(ctx)
	if err != nil {
		metrics.DashboardReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("load dashboard dataset: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()

	metrics.DashboardReloads.WithLabelValues("ok").Inc()
	slog.Info("dashboard dataset loaded", "rows", len(records))
	return nil
}

// Records returns the current dataset. Callers must not modify it.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// LoadedAt returns when the current dataset was loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Summarize runs Summarize over the current dataset.
func (s *Store) Summarize(f Filter) *Summary {
	return Summarize(s.Records(), f)
}

// Genres lists the distinct genres of the current dataset.
func (s *Store) Genres() []string {
	return Genres(s.Records())
}

// Watch reloads the store whenever the file at path is written or replaced.
// The parent directory is watched so editors that save by rename are seen.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	slog.Info("watching dashboard dataset", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				slog.Error("dashboard reload failed, keeping previous data", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("dashboard watcher error", "error", err)
		}
	}
}
