package service

import (
	"context"
	"fmt"
	"time"

	"rich-notes-be/internal/dto"
	"rich-notes-be/internal/entity"
	"rich-notes-be/internal/mapper"
	"rich-notes-be/internal/pkg/logger"
	"rich-notes-be/internal/repository/contract"
	"rich-notes-be/internal/repository/specification"
	"rich-notes-be/internal/repository/unitofwork"
	"rich-notes-be/pkg/events"
	"rich-notes-be/pkg/richtext"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Markdown(ctx context.Context, userId uuid.UUID, id uuid.UUID) (string, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

// EventPublisher is the cross-service event bus (NATS in production).
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
	codec            *richtext.Codec
	mapper           *mapper.NoteMapper
}

// NewNoteService wires the note use cases. publisherService and
// eventPublisher may be nil; change notifications are then skipped.
func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		codec:            richtext.NewCodec(log.Zap()),
		mapper:           mapper.NewNoteMapper(),
	}
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.NoteOwnedByUser{UserID: userId},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return c.mapper.ToResponses(notes), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := c.find(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponse(note), nil
}

func (c *noteService) Markdown(ctx context.Context, userId uuid.UUID, id uuid.UUID) (string, error) {
	note, err := c.find(ctx, c.uowFactory.NewUnitOfWork(ctx), userId, id)
	if err != nil {
		return "", err
	}

	body := richtext.ToMarkdown(c.codec.Deserialize(note.Content))
	return fmt.Sprintf("# %s\n\n%s", note.Title, body), nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	c.inspectContent(req.Content)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publishChange(ctx, &note, dto.NoteActionCreated)
	return c.mapper.ToResponse(&note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	c.inspectContent(req.Content)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer uow.Rollback()

	note, err := c.find(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Content = req.Content
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	c.publishChange(ctx, note, dto.NoteActionUpdated)
	return c.mapper.ToResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer uow.Rollback()

	note, err := c.find(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	c.publishChange(ctx, note, dto.NoteActionDeleted)
	return nil
}

// find loads a note owned by userId, wrapping ErrNoteNotFound when missing.
func (c *noteService) find(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("find note %s: %w", id, err)
	}
	if note == nil {
		return nil, fmt.Errorf("note %s: %w", id, contract.ErrNoteNotFound)
	}
	return note, nil
}

// inspectContent records notes saved as plain text. Both forms are stored.
func (c *noteService) inspectContent(content string) {
	if content == "" {
		return
	}
	if _, err := c.codec.DeserializeStrict(content); err != nil {
		c.logger.Debug("NoteService", "Storing plain text content", map[string]interface{}{"reason": err.Error()})
	}
}

var noteEventTypes = map[dto.NoteAction]string{
	dto.NoteActionCreated: events.NoteCreated,
	dto.NoteActionUpdated: events.NoteUpdated,
	dto.NoteActionDeleted: events.NoteDeleted,
}

// publishChange fans a mutation out to websocket clients and the event bus.
// Failures are logged; the mutation itself already succeeded.
func (c *noteService) publishChange(ctx context.Context, note *entity.Note, action dto.NoteAction) {
	if c.publisherService != nil {
		change := dto.NoteChangedMessage{NoteId: note.Id, UserId: note.UserId, Action: action}
		if err := c.publisherService.Publish(ctx, change); err != nil {
			c.logger.Warn("NoteService", "Failed to publish note change", map[string]interface{}{
				"note_id": note.Id,
				"error":   err,
			})
		}
	}

	if c.eventPublisher != nil {
		evt := events.NewNoteEvent(noteEventTypes[action], note.Id.String(), note.UserId.String(), note.Title)
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.logger.Warn("NoteService", "Failed to publish note event", map[string]interface{}{
				"event": evt.Type,
				"error": err,
			})
		}
	}
}
