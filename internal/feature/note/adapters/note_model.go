package adapters

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"notes_backend/internal/feature/note/domain/entity"
)

// NoteModel is the persisted form of a note.
type NoteModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	Tags      tagList   `gorm:"type:text;not null"`
	IsPinned  bool      `gorm:"not null;default:false;index:idx_notes_owner_order,priority:2"`
	UserID    string    `gorm:"size:36;not null;index:idx_notes_owner_order,priority:1"`
	CreatedAt time.Time `gorm:"not null;index:idx_notes_owner_order,priority:3"`
}

func (NoteModel) TableName() string {
	return "notes"
}

// tagList stores the ordered tags of a note as a JSON array.
type tagList []string

func (t tagList) Value() (driver.Value, error) {
	if t == nil {
		t = tagList{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(t)); err != nil {
		return nil, err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (t *tagList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = tagList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("tagList: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*t = tagList{}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("tagList: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}

func toModel(n *entity.Note) NoteModel {
	return NoteModel{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tagList(n.Tags),
		IsPinned:  n.IsPinned,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt,
	}
}

func (m NoteModel) toEntity() entity.Note {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return entity.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      tags,
		IsPinned:  m.IsPinned,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}
