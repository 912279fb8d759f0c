// Package dto defines the request and response bodies of the note endpoints.
package dto

import "notes_backend/internal/feature/note/domain/entity"

// AddNoteReq is the body of POST /api/note/add.
type AddNoteReq struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// EditNoteReq is the body of PUT /api/note/edit/:id. Omitted fields stay unchanged.
type EditNoteReq struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// Patch converts the request into a domain patch.
func (r EditNoteReq) Patch() entity.NotePatch {
	return entity.NotePatch{
		Title:    r.Title,
		Content:  r.Content,
		Tags:     r.Tags,
		IsPinned: r.IsPinned,
	}
}

// PinNoteReq is the body of PUT /api/note/update-note-pinned/:id.
type PinNoteReq struct {
	IsPinned *bool `json:"isPinned"`
}
