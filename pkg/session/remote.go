package session

import (
	"context"
	"time"
)

// Note is a persisted note as returned by the store.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteInput is the writable part of a note.
type NoteInput struct {
	Title   string
	Content string
}

// RemoteSync is the note store the machine reads from and writes to.
// Implementations wrap ErrNotFound when an id is unknown; any other error is
// treated as transient.
type RemoteSync interface {
	ListNotes(ctx context.Context) ([]Note, error)
	GetNote(ctx context.Context, id string) (Note, error)
	CreateNote(ctx context.Context, input NoteInput) (Note, error)
	UpdateNote(ctx context.Context, id string, input NoteInput) (Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a user-visible message produced by a transition.
type Notice struct {
	Level   NoticeLevel
	Message string
	Err     error
}

// Notifier receives notices. It is called outside the machine's lock and may
// call back into the machine.
type Notifier interface {
	Notify(n Notice)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(n Notice)

func (f NotifyFunc) Notify(n Notice) { f(n) }
