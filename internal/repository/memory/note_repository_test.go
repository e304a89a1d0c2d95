package memory

import (
	"context"
	"testing"
	"time"

	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/repository/contract"
	"rich-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type unsupportedSpec struct{}

func (unsupportedSpec) Apply(db *gorm.DB) *gorm.DB { return db }

func TestNoteRepositoryCrud(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	owner := uuid.New()

	note := &entity.Note{Title: "Groceries", Content: "Milk", UserId: owner}
	require.NoError(t, repo.Create(ctx, note))
	assert.NotEqual(t, uuid.Nil, note.Id)
	assert.False(t, note.CreatedAt.IsZero())

	// Duplicate ids are rejected.
	assert.Error(t, repo.Create(ctx, &entity.Note{Id: note.Id}))

	found, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Groceries", found.Title)

	// Returned notes are copies.
	found.Title = "changed"
	again, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", again.Title)

	update := &entity.Note{Id: note.Id, Title: "Shopping", Content: "Eggs"}
	require.NoError(t, repo.Update(ctx, update))
	assert.Equal(t, owner, update.UserId)
	require.NotNil(t, update.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, note.Id))
	missing, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Delete(ctx, note.Id), contract.ErrNoteNotFound)
	assert.ErrorIs(t, repo.Update(ctx, update), contract.ErrNoteNotFound)
}

func TestNoteRepositoryFindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository()
	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &entity.Note{
			Title:     title,
			UserId:    alice,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Note{Title: "bob's", UserId: bob, CreatedAt: base}))

	notes, err := repo.FindAll(ctx, specification.NoteOwnedByUser{UserID: alice}, specification.NewestFirst())
	require.NoError(t, err)
	titles := make([]string, len(notes))
	for i, n := range notes {
		titles[i] = n.Title
	}
	assert.Equal(t, []string{"third", "second", "first"}, titles)

	notes, err = repo.FindAll(ctx, specification.OrderBy{Field: "title"})
	require.NoError(t, err)
	require.Len(t, notes, 4)
	assert.Equal(t, "bob's", notes[0].Title)

	_, err = repo.FindAll(ctx, unsupportedSpec{})
	assert.Error(t, err)
}
