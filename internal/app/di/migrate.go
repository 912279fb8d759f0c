package di

import (
	"gorm.io/gorm"

	authentity "notes_backend/internal/feature/auth/domain/entity"
	noteadapters "notes_backend/internal/feature/note/adapters"
	"notes_backend/internal/platform/db"
)

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{&authentity.User{}, &noteadapters.NoteModel{}}
}

// Migrate creates or updates the tables of every persisted model.
func Migrate(gdb *gorm.DB) error {
	return db.AutoMigrate(gdb, Models()...)
}
