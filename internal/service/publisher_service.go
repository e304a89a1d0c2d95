package service

import (
	"context"
	"encoding/json"
	"fmt"

	"rich-notes-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, change dto.NoteChangedMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (s *publisherService) Publish(ctx context.Context, change dto.NoteChangedMessage) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal note change: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := s.publisher.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topicName, err)
	}
	return nil
}
