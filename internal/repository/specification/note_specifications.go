package specification

import (
	"rich-notes-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

func (s NoteOwnedByUser) MatchNote(n *entity.Note) bool {
	return n.UserId == s.UserID
}

// NewestFirst is the default listing order.
func NewestFirst() Specification {
	return OrderBy{Field: "created_at", Desc: true}
}
