package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"max=255"`
	Content string    `json:"content"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Preview   string     `json:"preview"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type NoteAction string

const (
	NoteActionCreated NoteAction = "created"
	NoteActionUpdated NoteAction = "updated"
	NoteActionDeleted NoteAction = "deleted"
)

// NoteChangedMessage travels on the in-process bus after every mutation.
type NoteChangedMessage struct {
	NoteId uuid.UUID  `json:"note_id"`
	UserId uuid.UUID  `json:"user_id"`
	Action NoteAction `json:"action"`
}
