package session

import "errors"

var (
	// ErrNotFound is returned (possibly wrapped) by a RemoteSync when the
	// requested note does not exist on the server.
	ErrNotFound = errors.New("note not found")

	ErrSaveInProgress = errors.New("a save or delete is already in progress")
	ErrNotEditing     = errors.New("no note is open")
	ErrNoSelection    = errors.New("the open note has not been saved yet")
	ErrDeleteDeclined = errors.New("delete was not confirmed")
	ErrSuperseded     = errors.New("note load was superseded by a later transition")
)
