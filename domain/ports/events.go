package ports

import (
	"context"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Task Event Port - แจ้งการเปลี่ยนแปลงของ task ออกไปข้างนอก (NATS)
// ═══════════════════════════════════════════════════════════════════════════════

type TaskEventType string

const (
	TaskEventCreated   TaskEventType = "task.created"
	TaskEventUpdated   TaskEventType = "task.updated"
	TaskEventAssigned  TaskEventType = "task.assigned"
	TaskEventCompleted TaskEventType = "task.completed"
	TaskEventReopened  TaskEventType = "task.reopened"
	TaskEventDeleted   TaskEventType = "task.deleted"
	TaskEventOverdue   TaskEventType = "task.overdue"
)

// TaskEvent - Plain struct (ไม่มี NATS dependency)
type TaskEvent struct {
	Type             TaskEventType
	TaskID           string
	Title            string
	ActorID          string // ว่างสำหรับ event จาก scheduler
	RecipientID      string // ใช้กับ task.overdue
	CreatedByUserID  string
	AssignedToUserID string
	IsCompleted      bool
	DueDate          *time.Time
	OccurredAt       time.Time
}

// TaskEventPublisher - best-effort; caller ไม่ fail request ถ้า publish ไม่สำเร็จ
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
