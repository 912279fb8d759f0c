// Package usecase implements the business logic for the note feature.
package usecase

import (
	"context"
	"strings"

	"notes_backend/internal/feature/note/domain/entity"
)

// NoteRepository hands out owner-scoped accessors to the note store.
// There is deliberately no unscoped accessor: every query is built for one owner.
type NoteRepository interface {
	ForOwner(userID string) OwnerNotes
}

// OwnerNotes is the note store restricted to the notes of one user.
// Every method filters by that user, so notes of other users behave as absent.
type OwnerNotes interface {
	// Create persists a new note owned by the scoped user and assigns its ID and CreatedAt.
	Create(ctx context.Context, note *entity.Note) error
	// List returns all notes ordered pinned first, newest first.
	List(ctx context.Context) ([]entity.Note, error)
	// Search returns the notes matching query in the same order as List.
	Search(ctx context.Context, query string) ([]entity.Note, error)
	// Update applies patch to the note and returns it; ErrNoteNotFound if absent.
	Update(ctx context.Context, id string, patch entity.NotePatch) (*entity.Note, error)
	// Delete removes the note; ErrNoteNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// NoteInput is the data accepted when creating a note.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NoteUsecase provides the note operations available to an authenticated user.
type NoteUsecase struct {
	repo NoteRepository
}

// NewNoteUsecase creates a new NoteUsecase with the given repository.
func NewNoteUsecase(r NoteRepository) *NoteUsecase {
	return &NoteUsecase{repo: r}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (u *NoteUsecase) notesOf(userID string) (OwnerNotes, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return u.repo.ForOwner(userID), nil
}

// AddNote creates a note owned by userID. Fields are stored verbatim.
func (u *NoteUsecase) AddNote(ctx context.Context, userID string, in NoteInput) (*entity.Note, error) {
	notes, err := u.notesOf(userID)
	if err != nil {
		return nil, err
	}
	if blank(in.Title) || blank(in.Content) {
		return nil, ErrTitleContentRequired
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	note := &entity.Note{
		Title:   in.Title,
		Content: in.Content,
		Tags:    tags,
		UserID:  userID,
	}
	if err := notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns every note of userID, pinned notes first.
func (u *NoteUsecase) ListNotes(ctx context.Context, userID string) ([]entity.Note, error) {
	notes, err := u.notesOf(userID)
	if err != nil {
		return nil, err
	}
	return notes.List(ctx)
}

// EditNote changes only the supplied fields of a note owned by userID.
func (u *NoteUsecase) EditNote(ctx context.Context, userID, noteID string, patch entity.NotePatch) (*entity.Note, error) {
	notes, err := u.notesOf(userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, ErrNoChanges
	}
	if (patch.Title != nil && blank(*patch.Title)) || (patch.Content != nil && blank(*patch.Content)) {
		return nil, ErrTitleContentRequired
	}
	if patch.Tags != nil && *patch.Tags == nil {
		empty := []string{}
		patch.Tags = &empty
	}
	return notes.Update(ctx, noteID, patch)
}

// SetPinned sets the pin state of a note owned by userID to pinned.
// A nil pinned is rejected: the operation always sets an explicit state, it never toggles.
func (u *NoteUsecase) SetPinned(ctx context.Context, userID, noteID string, pinned *bool) (*entity.Note, error) {
	notes, err := u.notesOf(userID)
	if err != nil {
		return nil, err
	}
	if pinned == nil {
		return nil, ErrPinnedRequired
	}
	return notes.Update(ctx, noteID, entity.NotePatch{IsPinned: pinned})
}

// DeleteNote removes a note owned by userID.
func (u *NoteUsecase) DeleteNote(ctx context.Context, userID, noteID string) error {
	notes, err := u.notesOf(userID)
	if err != nil {
		return err
	}
	return notes.Delete(ctx, noteID)
}

// SearchNotes returns the notes of userID whose title, content or tags contain query, ignoring case.
// Surrounding whitespace in query is not significant.
func (u *NoteUsecase) SearchNotes(ctx context.Context, userID, query string) ([]entity.Note, error) {
	notes, err := u.notesOf(userID)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	return notes.Search(ctx, query)
}
