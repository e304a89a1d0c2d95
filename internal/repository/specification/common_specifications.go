package specification

import (
	"fmt"

	"rich-notes-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

func (s ByID) MatchNote(n *entity.Note) bool {
	return n.Id == s.ID
}

// OrderBy applies ordering. Field is a column name.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

func (s OrderBy) LessNote(a, b *entity.Note) bool {
	var less, equal bool
	switch s.Field {
	case "title":
		less, equal = a.Title < b.Title, a.Title == b.Title
	case "updated_at":
		at, bt := a.CreatedAt, b.CreatedAt
		if a.UpdatedAt != nil {
			at = *a.UpdatedAt
		}
		if b.UpdatedAt != nil {
			bt = *b.UpdatedAt
		}
		less, equal = at.Before(bt), at.Equal(bt)
	default:
		less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	}
	if equal {
		return false
	}
	if s.Desc {
		return !less
	}
	return less
}
