// Package adapters provides the GORM note store.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notes_backend/internal/feature/note/domain/entity"
	"notes_backend/internal/feature/note/usecase"
)

// listOrder puts pinned notes first, newest first; id breaks ties so the order is total.
const listOrder = "is_pinned DESC, created_at DESC, id ASC"

type noteGorm struct {
	db *gorm.DB
}

var _ usecase.NoteRepository = (*noteGorm)(nil)

// NewNoteRepository creates a note store backed by db.
func NewNoteRepository(db *gorm.DB) *noteGorm {
	return &noteGorm{db: db}
}

// ForOwner returns the store restricted to the notes of userID.
func (r *noteGorm) ForOwner(userID string) usecase.OwnerNotes {
	return &ownerNotesGorm{db: r.db, userID: userID}
}

// ownerNotesGorm adds the owner condition to every statement it issues.
type ownerNotesGorm struct {
	db     *gorm.DB
	userID string
}

var _ usecase.OwnerNotes = (*ownerNotesGorm)(nil)

func (s *ownerNotesGorm) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&NoteModel{}).Where("user_id = ?", s.userID)
}

func (s *ownerNotesGorm) Create(ctx context.Context, note *entity.Note) error {
	if note == nil {
		return errors.New("note is nil")
	}
	note.ID = uuid.NewString()
	note.UserID = s.userID
	if note.Tags == nil {
		note.Tags = []string{}
	}

	m := toModel(note)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	note.CreatedAt = m.CreatedAt
	return nil
}

func (s *ownerNotesGorm) List(ctx context.Context) ([]entity.Note, error) {
	var rows []NoteModel
	if err := s.scoped(ctx).Order(listOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Note, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Search filters the owner's notes in process so matching is the same on every driver.
func (s *ownerNotesGorm) Search(ctx context.Context, query string) ([]entity.Note, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Note, 0, len(all))
	for i := range all {
		if all[i].Matches(query) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *ownerNotesGorm) Update(ctx context.Context, id string, patch entity.NotePatch) (*entity.Note, error) {
	changes := map[string]any{}
	if patch.Title != nil {
		changes["title"] = *patch.Title
	}
	if patch.Content != nil {
		changes["content"] = *patch.Content
	}
	if patch.Tags != nil {
		changes["tags"] = tagList(*patch.Tags)
	}
	if patch.IsPinned != nil {
		changes["is_pinned"] = *patch.IsPinned
	}

	if len(changes) > 0 {
		res := s.scoped(ctx).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, usecase.ErrNoteNotFound
		}
	}

	var m NoteModel
	if err := s.scoped(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoteNotFound
		}
		return nil, err
	}
	n := m.toEntity()
	return &n, nil
}

func (s *ownerNotesGorm) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, s.userID).Delete(&NoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}
