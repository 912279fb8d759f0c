// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	noteadapters "notes_backend/internal/feature/note/adapters"
	noteusecase "notes_backend/internal/feature/note/usecase"
	"notes_backend/internal/platform/cache"
)

// NewNoteRepository creates the note store.
// If Redis is available, the per-owner list is cached in front of the database.
// Otherwise, the database store is used directly.
func NewNoteRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) noteusecase.NoteRepository {
	repo := noteadapters.NewNoteRepository(db)
	if rdb != nil {
		return cache.NewCachingNoteRepository(rdb, ttl, repo, "notes")
	}
	return repo
}
