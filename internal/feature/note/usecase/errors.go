package usecase

import "notes_backend/internal/shared/apperr"

var (
	// ErrNoteNotFound is returned when a note does not exist or belongs to another user.
	ErrNoteNotFound = apperr.New(apperr.NotFound, "Note not found or user unauthorized")

	// ErrTitleContentRequired is returned when a note would end up without title or content.
	ErrTitleContentRequired = apperr.New(apperr.BadRequest, "Title and content are required")

	// ErrNoChanges is returned when an edit supplies no fields.
	ErrNoChanges = apperr.New(apperr.BadRequest, "No changes provided")

	// ErrQueryRequired is returned when a search query is blank.
	ErrQueryRequired = apperr.New(apperr.BadRequest, "Search query is required")

	// ErrPinnedRequired is returned when the pin operation omits the target state.
	ErrPinnedRequired = apperr.New(apperr.BadRequest, "isPinned is required")

	// ErrUnauthenticated is returned when an operation is invoked without a caller identity.
	ErrUnauthenticated = apperr.New(apperr.Unauthorized, "Unauthorized")
)
