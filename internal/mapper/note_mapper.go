package mapper

import (
	"time"

	"rich-notes-be/internal/dto"
	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/model"
	"rich-notes-be/pkg/richtext"

	"gorm.io/gorm"
)

const previewLength = 160

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	note := &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		IsDeleted: n.DeletedAt.Valid,
	}
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		note.UpdatedAt = &t
	}
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		note.DeletedAt = &t
	}
	return note
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	out := &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
	}
	if n.UpdatedAt != nil {
		out.UpdatedAt = *n.UpdatedAt
	}
	switch {
	case n.DeletedAt != nil:
		out.DeletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	case n.IsDeleted:
		out.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return out
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// ToResponse renders a note for the API, adding a plain-text preview that
// works for both rich and legacy content.
func (m *NoteMapper) ToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Preview:   richtext.Preview(n.Content, previewLength),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToResponses(notes []*entity.Note) []*dto.NoteResponse {
	out := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = m.ToResponse(n)
	}
	return out
}
