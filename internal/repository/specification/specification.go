package specification

import (
	"rich-notes-be/internal/entity"

	"gorm.io/gorm"
)

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// NoteMatcher is implemented by specifications that can filter notes held
// in memory.
type NoteMatcher interface {
	MatchNote(n *entity.Note) bool
}

// NoteSorter is implemented by specifications that order notes held in memory.
type NoteSorter interface {
	LessNote(a, b *entity.Note) bool
}
