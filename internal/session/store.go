// Package session persists the movie browser state of each visitor between
// requests.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"movieverse/internal/models"
)

// CookieName carries the session id.
const CookieName = "mv_session"

// Store loads and saves the latest QueryInput of a session.
type Store interface {
	// Load returns the stored input and whether the session was known.
	Load(ctx context.Context, id string) (models.QueryInput, bool, error)
	Save(ctx context.Context, id string, in models.QueryInput) error
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ---- Memory ----

// MemoryStore keeps sessions in process memory. Like RedisStore, a session
// expires ttl after its last save; expired entries are dropped on Save.
type MemoryStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	sessions  map[string]memoryEntry
	nextSweep time.Time
	now       func() time.Time
}

type memoryEntry struct {
	in      models.QueryInput
	expires time.Time
}

// NewMemoryStore creates an empty MemoryStore. A ttl <= 0 never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, id string) (models.QueryInput, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok || s.expired(e, s.now()) {
		return models.QueryInput{}, false, nil
	}
	return e.in, true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, in models.QueryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.ttl > 0 && !now.Before(s.nextSweep) {
		for k, e := range s.sessions {
			if s.expired(e, now) {
				delete(s.sessions, k)
			}
		}
		s.nextSweep = now.Add(s.ttl)
	}

	e := memoryEntry{in: in}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
	}
	s.sessions[id] = e
	return nil
}

// Len returns the number of entries held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return s.ttl > 0 && !now.Before(e.expires)
}

// ---- Redis ----

// RedisStore keeps sessions as JSON strings with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(id string) string {
	return "browse:session:" + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (models.QueryInput, bool, error) {
	data, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.QueryInput{}, false, nil
	}
	if err != nil {
		return models.QueryInput{}, false, fmt.Errorf("load session: %w", err)
	}

	var in models.QueryInput
	if err := json.Unmarshal(data, &in); err != nil {
		return models.QueryInput{}, false, fmt.Errorf("decode session: %w", err)
	}
	return in, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, in models.QueryInput) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
