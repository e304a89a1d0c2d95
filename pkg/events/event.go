package events

import "time"

const (
	NoteCreated = "NOTE_CREATED"
	NoteUpdated = "NOTE_UPDATED"
	NoteDeleted = "NOTE_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewNoteEvent builds a note lifecycle event. IDs are carried as strings so
// the payload survives a JSON round trip unchanged.
func NewNoteEvent(eventType, noteID, userID, title string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": noteID,
			"user_id": userID,
			"title":   title,
		},
		OccurredAt: time.Now(),
	}
}

// StringField reads a string entry from an event payload.
func StringField(e Event, key string) string {
	s, _ := e.Payload()[key].(string)
	return s
}
