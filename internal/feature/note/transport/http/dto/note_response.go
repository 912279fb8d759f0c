package dto

import (
	"time"

	"notes_backend/internal/feature/note/domain/entity"
)

// NoteRes is the JSON form of a note.
type NoteRes struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNoteRes converts a note, rendering missing tags as an empty array.
func NewNoteRes(n *entity.Note) NoteRes {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteRes{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		IsPinned:  n.IsPinned,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt.UTC(),
	}
}

// NewNoteResList converts notes, keeping their order. The result is never nil.
func NewNoteResList(notes []entity.Note) []NoteRes {
	out := make([]NoteRes, 0, len(notes))
	for i := range notes {
		out = append(out, NewNoteRes(&notes[i]))
	}
	return out
}

// NoteEnvelope wraps a single note.
type NoteEnvelope struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Note    NoteRes `json:"note"`
}

// NotesEnvelope wraps a list of notes.
type NotesEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Notes   []NoteRes `json:"notes"`
}

// MessageRes is the success envelope without payload.
type MessageRes struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
