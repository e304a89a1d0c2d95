package mapper

import (
	"testing"
	"time"

	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNoteMapperModelRoundTrip(t *testing.T) {
	m := NewNoteMapper()
	created := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	src := &model.Note{
		Id:        uuid.New(),
		Title:     "Groceries",
		Content:   "Milk",
		UserId:    uuid.New(),
		CreatedAt: created,
	}
	e := m.ToEntity(src)
	assert.Nil(t, e.UpdatedAt)
	assert.False(t, e.IsDeleted)
	assert.Equal(t, src, m.ToModel(e))

	src.UpdatedAt = created.Add(time.Hour)
	src.DeletedAt = gorm.DeletedAt{Time: created.Add(2 * time.Hour), Valid: true}
	e = m.ToEntity(src)
	require.NotNil(t, e.UpdatedAt)
	require.NotNil(t, e.DeletedAt)
	assert.True(t, e.IsDeleted)
	assert.Equal(t, src, m.ToModel(e))

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}

func TestNoteMapperResponsePreview(t *testing.T) {
	m := NewNoteMapper()

	rich := &entity.Note{
		Title:   "Groceries",
		Content: `{"blocks":[{"key":"a","text":"Milk","type":"unstyled"},{"key":"b","text":"Eggs","type":"unordered-list-item"}],"entityMap":{}}`,
	}
	legacy := &entity.Note{Title: "Old", Content: "just some text"}

	out := m.ToResponses([]*entity.Note{rich, legacy})
	require.Len(t, out, 2)
	assert.Equal(t, "just some text", out[1].Preview)
	assert.Contains(t, out[0].Preview, "Milk")
	assert.NotContains(t, out[0].Preview, "blocks")
}
