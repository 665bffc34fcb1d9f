package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/ports"
	natspkg "task-manager-api/infrastructure/nats"
)

type recordingSink struct {
	messages []*natspkg.TaskEventMessage
}

func (s *recordingSink) PublishTaskEvent(_ context.Context, msg *natspkg.TaskEventMessage) error {
	s.messages = append(s.messages, msg)
	return nil
}

func TestNATSTaskEventPublisher(t *testing.T) {
	sink := &recordingSink{}
	publisher := &NATSTaskEventPublisher{publisher: sink}

	due := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	occurred := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	err := publisher.PublishTaskEvent(context.Background(), &ports.TaskEvent{
		Type:             ports.TaskEventOverdue,
		TaskID:           "task-1",
		Title:            "Buy milk",
		RecipientID:      "user-2",
		CreatedByUserID:  "user-1",
		AssignedToUserID: "user-2",
		DueDate:          &due,
		OccurredAt:       occurred,
	})
	require.NoError(t, err)
	require.Len(t, sink.messages, 1)

	msg := sink.messages[0]
	assert.Equal(t, "task.overdue", msg.Type)
	assert.Equal(t, "user-2", msg.RecipientID)
	assert.Equal(t, occurred.Unix(), msg.OccurredAt)
	assert.Equal(t, &due, msg.DueDate)
}

func TestNATSTaskEventPublisherRejectsIncompleteEvents(t *testing.T) {
	publisher := &NATSTaskEventPublisher{publisher: &recordingSink{}}

	assert.Error(t, publisher.PublishTaskEvent(context.Background(), nil))
	assert.Error(t, publisher.PublishTaskEvent(context.Background(), &ports.TaskEvent{Type: ports.TaskEventCreated}))
}
