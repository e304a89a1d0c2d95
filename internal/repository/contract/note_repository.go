package contract

import (
	"context"
	"errors"

	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	// Delete returns ErrNoteNotFound when no live note has the id.
	Delete(ctx context.Context, id uuid.UUID) error
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
}
