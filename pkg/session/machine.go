package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"rich-notes-be/pkg/richtext"
)

const (
	DefaultTitle  = "New Note"
	DateLayout    = "January 2, 2006"
	previewLength = 120

	deletePrompt = "Are you sure you want to delete this note?"

	msgSaved         = "Note saved successfully!"
	msgSaveFailed    = "Failed to save note"
	msgDeleted       = "Note deleted successfully!"
	msgDeleteFailed  = "Failed to delete note"
	msgLoadFailed    = "Failed to load note"
	msgRefreshFailed = "Failed to fetch notes"
	msgGone          = "This note no longer exists"
)

// State is the coarse editing state derived from a Session.
type State int

const (
	StateClosed State = iota
	StateEditingNew
	StateEditingExisting
)

func (s State) String() string {
	switch s {
	case StateEditingNew:
		return "editing(new)"
	case StateEditingExisting:
		return "editing(existing)"
	}
	return "closed"
}

// Session is the editing state of the single open note.
type Session struct {
	SelectedNoteID string
	DraftTitle     string
	DraftDocument  richtext.Document
	IsDirty        bool
	IsOpen         bool
	IsSaving       bool
}

func (s Session) State() State {
	switch {
	case !s.IsOpen:
		return StateClosed
	case s.SelectedNoteID == "":
		return StateEditingNew
	}
	return StateEditingExisting
}

// Summary is a sidebar row for one note.
type Summary struct {
	ID      string
	Title   string
	Preview string
	Date    string
}

type Option func(*Machine)

// WithConfirmer sets the prompt used before deleting. Without one, deletes
// are confirmed automatically.
func WithConfirmer(c Confirmer) Option {
	return func(m *Machine) { m.confirmer = c }
}

func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

func WithCodec(c *richtext.Codec) Option {
	return func(m *Machine) { m.codec = c }
}

// Machine drives one editing session against a RemoteSync. It is safe for
// concurrent use; remote calls are made without holding the lock.
type Machine struct {
	remote    RemoteSync
	confirmer Confirmer
	notifier  Notifier
	logger    *zap.Logger
	codec     *richtext.Codec

	mu       sync.Mutex
	s        Session
	deleting bool
	// revision counts draft edits so a save can tell whether the draft moved
	// on while it was in flight.
	revision uint64
	// loadSeq invalidates SelectNote fetches overtaken by a later transition.
	loadSeq uint64
	notes   []Note
	notice  Notice
}

func NewMachine(remote RemoteSync, opts ...Option) *Machine {
	m := &Machine{remote: remote}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.logger = m.logger.Named("session")
	if m.codec == nil {
		m.codec = richtext.NewCodec(m.logger)
	}
	return m
}

// Snapshot returns a copy of the session safe to read without the lock.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.s
	s.DraftDocument = m.s.DraftDocument.Clone()
	return s
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.State()
}

func (m *Machine) LastNotice() Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice
}

// Notes returns the cached note list from the last refresh.
func (m *Machine) Notes() []Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Note(nil), m.notes...)
}

func (m *Machine) Summaries() []Summary {
	notes := m.Notes()
	out := make([]Summary, len(notes))
	for i, n := range notes {
		out[i] = Summary{
			ID:      n.ID,
			Title:   n.Title,
			Preview: m.codec.Preview(n.Content, previewLength),
		}
		if !n.CreatedAt.IsZero() {
			out[i].Date = n.CreatedAt.Format(DateLayout)
		}
	}
	return out
}

// RefreshNotes replaces the cached list with the server's.
func (m *Machine) RefreshNotes(ctx context.Context) error {
	notes, err := m.remote.ListNotes(ctx)
	if err != nil {
		m.logger.Warn("list notes failed", zap.Error(err))
		m.emit(Notice{Level: NoticeError, Message: msgRefreshFailed, Err: err})
		return fmt.Errorf("list notes: %w", err)
	}

	m.mu.Lock()
	m.notes = append([]Note(nil), notes...)
	m.mu.Unlock()
	return nil
}

// SelectNote loads a note into the draft. On ErrNotFound the session closes;
// on other errors it is left as it was.
func (m *Machine) SelectNote(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.busyLocked() {
		m.mu.Unlock()
		return ErrSaveInProgress
	}
	m.loadSeq++
	seq := m.loadSeq
	m.mu.Unlock()

	note, err := m.remote.GetNote(ctx, id)

	m.mu.Lock()
	if seq != m.loadSeq || m.busyLocked() {
		m.mu.Unlock()
		m.logger.Debug("discarding overtaken note load", zap.String("note_id", id))
		return ErrSuperseded
	}
	if err != nil {
		notice := Notice{Level: NoticeError, Message: msgLoadFailed, Err: err}
		if errors.Is(err, ErrNotFound) {
			m.resetLocked()
			notice.Message = msgGone
		}
		m.mu.Unlock()
		m.logger.Warn("get note failed", zap.String("note_id", id), zap.Error(err))
		m.emit(notice)
		return fmt.Errorf("get note %s: %w", id, err)
	}

	m.s = Session{
		SelectedNoteID: note.ID,
		DraftTitle:     note.Title,
		DraftDocument:  m.codec.Deserialize(note.Content),
		IsOpen:         true,
	}
	m.revision++
	m.mu.Unlock()
	return nil
}

// NewNote opens an empty, unsaved note.
func (m *Machine) NewNote() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busyLocked() {
		return ErrSaveInProgress
	}
	m.resetLocked()
	m.s.IsOpen = true
	return nil
}

func (m *Machine) EditContent(doc richtext.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.s.IsOpen {
		return ErrNotEditing
	}
	m.s.DraftDocument = doc.Clone()
	m.s.IsDirty = true
	m.revision++
	return nil
}

func (m *Machine) EditTitle(title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.s.IsOpen {
		return ErrNotEditing
	}
	m.s.DraftTitle = title
	m.s.IsDirty = true
	m.revision++
	return nil
}

// ApplyInlineStyle toggles style over sel in the draft.
func (m *Machine) ApplyInlineStyle(sel richtext.Selection, style richtext.InlineStyle) error {
	return m.applyCommand(func(doc richtext.Document) richtext.Document {
		return richtext.ToggleInlineStyle(doc, sel, style)
	})
}

// ApplyBlockType toggles the block type of the blocks in sel.
func (m *Machine) ApplyBlockType(sel richtext.Selection, blockType richtext.BlockType) error {
	return m.applyCommand(func(doc richtext.Document) richtext.Document {
		return richtext.ToggleBlockType(doc, sel, blockType)
	})
}

func (m *Machine) ApplyKeyCommand(sel richtext.Selection, command string) (richtext.KeyCommandResult, error) {
	result := richtext.NotHandled
	err := m.applyCommand(func(doc richtext.Document) richtext.Document {
		out, res := richtext.HandleKeyCommand(doc, sel, command)
		result = res
		return out
	})
	return result, err
}

func (m *Machine) applyCommand(cmd func(richtext.Document) richtext.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.s.IsOpen {
		return ErrNotEditing
	}
	out := cmd(m.s.DraftDocument)
	if richtext.Equal(out, m.s.DraftDocument) {
		return nil
	}
	m.s.DraftDocument = out
	m.s.IsDirty = true
	m.revision++
	return nil
}

// Save persists the draft, creating the note when it has no id yet. Only one
// save runs at a time; a concurrent call gets ErrSaveInProgress.
func (m *Machine) Save(ctx context.Context) (Note, error) {
	m.mu.Lock()
	if !m.s.IsOpen {
		m.mu.Unlock()
		return Note{}, ErrNotEditing
	}
	if m.busyLocked() {
		m.mu.Unlock()
		return Note{}, ErrSaveInProgress
	}
	m.s.IsSaving = true
	id := m.s.SelectedNoteID
	input := NoteInput{Title: m.s.DraftTitle, Content: m.codec.Serialize(m.s.DraftDocument)}
	rev := m.revision
	m.mu.Unlock()

	var (
		note Note
		err  error
	)
	if id == "" {
		note, err = m.remote.CreateNote(ctx, input)
	} else {
		note, err = m.remote.UpdateNote(ctx, id, input)
	}

	m.mu.Lock()
	m.s.IsSaving = false
	if err != nil {
		notice := Notice{Level: NoticeError, Message: msgSaveFailed, Err: err}
		if id != "" && errors.Is(err, ErrNotFound) {
			m.resetLocked()
			notice.Message = msgGone
		}
		m.mu.Unlock()
		m.logger.Warn("save note failed", zap.String("note_id", id), zap.Error(err))
		m.emit(notice)
		return Note{}, fmt.Errorf("save note: %w", err)
	}
	if id == "" {
		m.s.SelectedNoteID = note.ID
	}
	if m.revision == rev {
		m.s.IsDirty = false
	}
	m.mu.Unlock()

	m.logger.Info("note saved", zap.String("note_id", note.ID))
	// A failed refresh leaves the save itself successful.
	_ = m.RefreshNotes(ctx)
	m.emit(Notice{Level: NoticeInfo, Message: msgSaved})
	return note, nil
}

// Delete removes the selected note after confirmation, then closes the
// session and refreshes the list.
func (m *Machine) Delete(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case !m.s.IsOpen:
		m.mu.Unlock()
		return ErrNotEditing
	case m.s.SelectedNoteID == "":
		m.mu.Unlock()
		return ErrNoSelection
	case m.busyLocked():
		m.mu.Unlock()
		return ErrSaveInProgress
	}
	m.deleting = true
	id := m.s.SelectedNoteID
	m.mu.Unlock()

	ok, err := m.confirm(ctx)
	if err != nil || !ok {
		m.mu.Lock()
		m.deleting = false
		m.mu.Unlock()
		if err != nil {
			return fmt.Errorf("confirm delete: %w", err)
		}
		return ErrDeleteDeclined
	}

	err = m.remote.DeleteNote(ctx, id)

	m.mu.Lock()
	m.deleting = false
	if err != nil {
		gone := errors.Is(err, ErrNotFound)
		notice := Notice{Level: NoticeError, Message: msgDeleteFailed, Err: err}
		if gone {
			m.resetLocked()
			notice.Message = msgGone
		}
		m.mu.Unlock()
		m.logger.Warn("delete note failed", zap.String("note_id", id), zap.Error(err))
		if gone {
			_ = m.RefreshNotes(ctx)
		}
		m.emit(notice)
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	m.resetLocked()
	m.mu.Unlock()

	m.logger.Info("note deleted", zap.String("note_id", id))
	_ = m.RefreshNotes(ctx)
	m.emit(Notice{Level: NoticeInfo, Message: msgDeleted})
	return nil
}

// Close discards the draft without saving.
func (m *Machine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busyLocked() {
		return ErrSaveInProgress
	}
	m.resetLocked()
	return nil
}

func (m *Machine) confirm(ctx context.Context) (bool, error) {
	if m.confirmer == nil {
		return true, nil
	}
	return m.confirmer.Confirm(ctx, deletePrompt)
}

func (m *Machine) busyLocked() bool {
	return m.s.IsSaving || m.deleting
}

// resetLocked puts the session in the new-note empty state, closed.
func (m *Machine) resetLocked() {
	m.s = Session{
		DraftTitle:    DefaultTitle,
		DraftDocument: richtext.EmptyDocument(),
	}
	m.revision++
	m.loadSeq++
}

func (m *Machine) emit(n Notice) {
	m.mu.Lock()
	m.notice = n
	m.mu.Unlock()
	if m.notifier != nil {
		m.notifier.Notify(n)
	}
}
