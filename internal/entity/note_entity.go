package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a stored note. Content holds the serialized rich-text document,
// or legacy plain text written before rich text existed.
type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
