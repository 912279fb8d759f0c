// Package handler provides HTTP handlers for the note feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes_backend/internal/feature/note/domain/entity"
	"notes_backend/internal/feature/note/transport/http/dto"
	"notes_backend/internal/feature/note/usecase"
	jwtmw "notes_backend/internal/platform/jwt"
	"notes_backend/internal/shared/apperr"
)

const invalidBody = "Invalid request body"

// NoteUsecase defines the note operations used by the handler.
type NoteUsecase interface {
	AddNote(ctx context.Context, userID string, in usecase.NoteInput) (*entity.Note, error)
	ListNotes(ctx context.Context, userID string) ([]entity.Note, error)
	EditNote(ctx context.Context, userID, noteID string, patch entity.NotePatch) (*entity.Note, error)
	SetPinned(ctx context.Context, userID, noteID string, pinned *bool) (*entity.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
	SearchNotes(ctx context.Context, userID, query string) ([]entity.Note, error)
}

// NoteHandler serves the /api/note endpoints. Every route is mounted behind AuthRequired.
type NoteHandler struct {
	uc NoteUsecase
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(uc NoteUsecase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

// caller returns the verified user ID or records an Unauthorized error.
func caller(c *gin.Context) (string, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		_ = c.Error(usecase.ErrUnauthenticated)
	}
	return userID, ok
}

// AddNote handles POST /api/note/add.
func (h *NoteHandler) AddNote(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.AddNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.BadRequest, invalidBody, err))
		return
	}

	note, err := h.uc.AddNote(c.Request.Context(), userID, usecase.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NoteEnvelope{
		Success: true,
		Message: "Note added successfully",
		Note:    dto.NewNoteRes(note),
	})
}

// ListNotes handles GET /api/note/all.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	notes, err := h.uc.ListNotes(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NotesEnvelope{
		Success: true,
		Message: "All notes retrieved successfully",
		Notes:   dto.NewNoteResList(notes),
	})
}

// EditNote handles PUT /api/note/edit/:id.
func (h *NoteHandler) EditNote(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.EditNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.BadRequest, invalidBody, err))
		return
	}

	note, err := h.uc.EditNote(c.Request.Context(), userID, c.Param("id"), req.Patch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NoteEnvelope{
		Success: true,
		Message: "Note updated successfully",
		Note:    dto.NewNoteRes(note),
	})
}

// SetPinned handles PUT /api/note/update-note-pinned/:id.
func (h *NoteHandler) SetPinned(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	var req dto.PinNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.Wrap(apperr.BadRequest, invalidBody, err))
		return
	}

	note, err := h.uc.SetPinned(c.Request.Context(), userID, c.Param("id"), req.IsPinned)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NoteEnvelope{
		Success: true,
		Message: "Pin status updated successfully",
		Note:    dto.NewNoteRes(note),
	})
}

// DeleteNote handles DELETE /api/note/delete/:id.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteNote(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Success: true, Message: "Note deleted successfully"})
}

// SearchNotes handles GET /api/note/search?query=.
func (h *NoteHandler) SearchNotes(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	notes, err := h.uc.SearchNotes(c.Request.Context(), userID, c.Query("query"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NotesEnvelope{
		Success: true,
		Message: "Notes fetched successfully",
		Notes:   dto.NewNoteResList(notes),
	})
}
