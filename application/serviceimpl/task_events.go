package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/models"
	"task-manager-api/domain/ports"
	"task-manager-api/pkg/logger"
)

func newTaskEvent(eventType ports.TaskEventType, task *models.Task, actorID uuid.UUID, occurredAt time.Time) *ports.TaskEvent {
	event := &ports.TaskEvent{
		Type:            eventType,
		TaskID:          task.ID.String(),
		Title:           task.Title,
		CreatedByUserID: task.UserID.String(),
		IsCompleted:     task.IsCompleted,
		DueDate:         task.DueDate,
		OccurredAt:      occurredAt,
	}
	if actorID != uuid.Nil {
		event.ActorID = actorID.String()
	}
	if task.AssignedToUserID != nil {
		event.AssignedToUserID = task.AssignedToUserID.String()
	}
	return event
}

// publishTaskEvent เป็น best-effort: error ถูก log แต่ไม่ทำให้ request fail
func publishTaskEvent(ctx context.Context, publisher ports.TaskEventPublisher, event *ports.TaskEvent) bool {
	if publisher == nil {
		return false
	}
	if err := publisher.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event",
			"type", event.Type,
			"task_id", event.TaskID,
			"error", err,
		)
		return false
	}
	return true
}
