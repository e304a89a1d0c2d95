package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"rich-notes-be/internal/dto"
	"rich-notes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []dto.NoteChangedMessage
}

func (n *recordingNotifier) NotifyNotesChanged(change dto.NoteChangedMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

func (n *recordingNotifier) received() []dto.NoteChangedMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dto.NoteChangedMessage(nil), n.changes...)
}

func TestPublishedChangesReachNotifier(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	notifier := &recordingNotifier{}
	consumer := NewConsumerService(pubSub, "NOTE_CHANGED", notifier, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("NOTE_CHANGED", pubSub)
	change := dto.NoteChangedMessage{NoteId: uuid.New(), UserId: uuid.New(), Action: dto.NoteActionCreated}
	require.NoError(t, publisher.Publish(ctx, change))

	require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, change, notifier.received()[0])
}

func TestMalformedChangeIsAckedAndSkipped(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	notifier := &recordingNotifier{}
	consumer := NewConsumerService(pubSub, "NOTE_CHANGED", notifier, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	// Publish returns once the consumer acked, so a hang means a missing ack.
	require.NoError(t, pubSub.Publish("NOTE_CHANGED", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	good := dto.NoteChangedMessage{NoteId: uuid.New(), Action: dto.NoteActionDeleted}
	require.NoError(t, NewPublisherService("NOTE_CHANGED", pubSub).Publish(ctx, good))

	require.Eventually(t, func() bool { return len(notifier.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, good, notifier.received()[0])
}
