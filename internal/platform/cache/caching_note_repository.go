// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"notes_backend/internal/feature/note/domain/entity"
	"notes_backend/internal/feature/note/usecase"
)

// CachingNoteRepository decorates a NoteRepository with a Redis cache of each owner's note list.
//
// Each owner has a generation counter. Cached lists are stored under a key that carries the
// generation they were read in, and every successful write bumps the counter. A list read from
// the store before a concurrent write can therefore only land in a generation nobody reads again.
type CachingNoteRepository struct {
	inner     usecase.NoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.NoteRepository = (*CachingNoteRepository)(nil)

// NewCachingNoteRepository decorates a NoteRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "notes".
// A nil rdb disables caching.
func NewCachingNoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.NoteRepository, namespace string) *CachingNoteRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "notes"
	}
	return &CachingNoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ForOwner returns the inner owner-scoped store wrapped with the list cache.
func (c *CachingNoteRepository) ForOwner(userID string) usecase.OwnerNotes {
	inner := c.inner.ForOwner(userID)
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return inner
	}
	return &cachingOwnerNotes{
		inner:  inner,
		rdb:    c.rdb,
		ttl:    c.ttl,
		prefix: fmt.Sprintf("%s:%s", c.namespace, safe(userID)),
	}
}

type cachingOwnerNotes struct {
	inner  usecase.OwnerNotes
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// versionKey holds the owner's generation counter. It has no TTL.
func (s *cachingOwnerNotes) versionKey() string {
	return s.prefix + ":ver"
}

// listKey is the cached list of generation ver.
func (s *cachingOwnerNotes) listKey(ver int64) string {
	return fmt.Sprintf("%s:all:v%d", s.prefix, ver)
}

// List checks the cache of the current generation first, then falls back to the inner store.
func (s *cachingOwnerNotes) List(ctx context.Context) ([]entity.Note, error) {
	ver, err := s.rdb.Get(ctx, s.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		ver, err = 0, nil
	}
	if err != nil {
		// Without a generation the cache cannot be trusted.
		return s.inner.List(ctx)
	}
	key := s.listKey(ver)

	// 1) Check cache
	if b, err := s.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Note
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = s.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort). If a write bumped the generation meanwhile, this entry is never read.
	if b, err := json.Marshal(out); err == nil {
		_ = s.rdb.Set(ctx, key, b, s.ttl).Err()
	}
	return out, nil
}

// Search always hits the store.
func (s *cachingOwnerNotes) Search(ctx context.Context, query string) ([]entity.Note, error) {
	return s.inner.Search(ctx, query)
}

func (s *cachingOwnerNotes) Create(ctx context.Context, note *entity.Note) error {
	if err := s.inner.Create(ctx, note); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *cachingOwnerNotes) Update(ctx context.Context, id string, patch entity.NotePatch) (*entity.Note, error) {
	note, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return note, nil
}

func (s *cachingOwnerNotes) Delete(ctx context.Context, id string) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate starts a new generation; older cached lists expire with their TTL.
// Best effort: if the increment fails the old list stays visible until the TTL.
func (s *cachingOwnerNotes) invalidate(ctx context.Context) {
	if err := s.rdb.Incr(ctx, s.versionKey()).Err(); err != nil {
		slog.Warn("note cache invalidation failed", "key", s.versionKey(), "error", err)
	}
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
