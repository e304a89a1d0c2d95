package service

import (
	"context"
	"encoding/json"

	"rich-notes-be/internal/dto"
	"rich-notes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// NoteChangeNotifier pushes a change to the user's connected clients.
type NoteChangeNotifier interface {
	NotifyNotesChanged(change dto.NoteChangedMessage)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	notifier   NoteChangeNotifier
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	notifier NoteChangeNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		notifier:   notifier,
		logger:     log,
	}
}

// Consume subscribes to the topic and handles messages until ctx is done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var change dto.NoteChangedMessage
	if err := json.Unmarshal(msg.Payload, &change); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal note change", map[string]interface{}{"error": err})
		// Retrying cannot fix a malformed payload.
		msg.Ack()
		return
	}

	cs.notifier.NotifyNotesChanged(change)
	cs.logger.Debug("ConsumerService", "Note change delivered", map[string]interface{}{
		"note_id": change.NoteId,
		"action":  change.Action,
	})
	msg.Ack()
}
