// Package entity defines the domain models for the note feature.
package entity

import (
	"strings"
	"time"
)

// Note is a text note owned by exactly one user.
type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string // order is preserved
	IsPinned  bool
	UserID    string
	CreatedAt time.Time
}

// NotePatch lists the fields of an edit. Nil fields are left unchanged.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.IsPinned == nil
}

// Matches reports whether the title, the content or any tag contains query, ignoring case.
func (n *Note) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
