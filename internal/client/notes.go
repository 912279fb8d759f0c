package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Note is a note as returned by the API.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNote is the data of a note to create.
type NewNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// NoteChanges lists the fields to edit. Nil fields are not sent and stay unchanged.
type NoteChanges struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	IsPinned *bool     `json:"isPinned,omitempty"`
}

type noteResponse struct {
	messageResponse
	Note Note `json:"note"`
}

type notesResponse struct {
	messageResponse
	Notes []Note `json:"notes"`
}

// AddNote creates a note owned by the session user.
func (c *Client) AddNote(ctx context.Context, s Session, n NewNote) (Note, error) {
	var resp noteResponse
	if err := c.authed(ctx, s, http.MethodPost, "/api/note/add", n, &resp); err != nil {
		return Note{}, err
	}
	return resp.Note, nil
}

// ListNotes returns the session user's notes, pinned first.
func (c *Client) ListNotes(ctx context.Context, s Session) ([]Note, error) {
	var resp notesResponse
	if err := c.authed(ctx, s, http.MethodGet, "/api/note/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// EditNote changes the supplied fields of a note.
func (c *Client) EditNote(ctx context.Context, s Session, id string, ch NoteChanges) (Note, error) {
	var resp noteResponse
	if err := c.authed(ctx, s, http.MethodPut, "/api/note/edit/"+url.PathEscape(id), ch, &resp); err != nil {
		return Note{}, err
	}
	return resp.Note, nil
}

// SetPinned sets the pin state of a note.
func (c *Client) SetPinned(ctx context.Context, s Session, id string, pinned bool) (Note, error) {
	var resp noteResponse
	body := map[string]bool{"isPinned": pinned}
	if err := c.authed(ctx, s, http.MethodPut, "/api/note/update-note-pinned/"+url.PathEscape(id), body, &resp); err != nil {
		return Note{}, err
	}
	return resp.Note, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, s Session, id string) error {
	return c.authed(ctx, s, http.MethodDelete, "/api/note/delete/"+url.PathEscape(id), nil, nil)
}

// SearchNotes returns the session user's notes whose title, content or tags contain query.
func (c *Client) SearchNotes(ctx context.Context, s Session, query string) ([]Note, error) {
	var resp notesResponse
	path := "/api/note/search?query=" + url.QueryEscape(query)
	if err := c.authed(ctx, s, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}
