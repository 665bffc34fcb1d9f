package nats

import (
	"strings"
	"time"
)

// Stream names
const (
	StreamName           = "TASK_EVENTS"
	DefaultSubjectPrefix = "tasks"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TaskEventMessage - API → consumers (via JetStream)
// ⚠️ โครงสร้างนี้คือ wire format ที่ consumer อ่าน
// ═══════════════════════════════════════════════════════════════════════════════
type TaskEventMessage struct {
	Type             string     `json:"type"`    // task.created, task.updated, ...
	TaskID           string     `json:"task_id"`
	Title            string     `json:"title"`
	ActorID          string     `json:"actor_id,omitempty"`
	RecipientID      string     `json:"recipient_id,omitempty"`
	CreatedByUserID  string     `json:"created_by_user_id"`
	AssignedToUserID string     `json:"assigned_to_user_id,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	OccurredAt       int64      `json:"occurred_at"` // unix seconds
}

// EventSubject แปลง event type เป็น subject เช่น "task.created" → "tasks.created"
func EventSubject(prefix, eventType string) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return prefix + "." + strings.TrimPrefix(eventType, "task.")
}

// ═══════════════════════════════════════════════════════════════════════════════
// JetStream Status (สำหรับ /health)
// ═══════════════════════════════════════════════════════════════════════════════

type StreamInfo struct {
	Name     string `json:"name"`
	Messages uint64 `json:"messages"`
	Bytes    uint64 `json:"bytes"`
	LastSeq  uint64 `json:"lastSeq"`
}
