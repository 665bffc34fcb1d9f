package messaging

import (
	"context"
	"fmt"

	"task-manager-api/domain/ports"
	natspkg "task-manager-api/infrastructure/nats"
)

type taskEventSink interface {
	PublishTaskEvent(ctx context.Context, msg *natspkg.TaskEventMessage) error
}

// NATSTaskEventPublisher implements TaskEventPublisher using JetStream
type NATSTaskEventPublisher struct {
	publisher taskEventSink
}

// NewNATSTaskEventPublisher สร้าง TaskEventPublisher adapter สำหรับ NATS
func NewNATSTaskEventPublisher(publisher *natspkg.Publisher) ports.TaskEventPublisher {
	return &NATSTaskEventPublisher{publisher: publisher}
}

// PublishTaskEvent แปลงเป็น wire format แล้วส่งต่อ
func (p *NATSTaskEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.TaskID == "" {
		return fmt.Errorf("task_id is required")
	}

	return p.publisher.PublishTaskEvent(ctx, toTaskEventMessage(event))
}

func toTaskEventMessage(event *ports.TaskEvent) *natspkg.TaskEventMessage {
	return &natspkg.TaskEventMessage{
		Type:             string(event.Type),
		TaskID:           event.TaskID,
		Title:            event.Title,
		ActorID:          event.ActorID,
		RecipientID:      event.RecipientID,
		CreatedByUserID:  event.CreatedByUserID,
		AssignedToUserID: event.AssignedToUserID,
		IsCompleted:      event.IsCompleted,
		DueDate:          event.DueDate,
		OccurredAt:       event.OccurredAt.Unix(),
	}
}
