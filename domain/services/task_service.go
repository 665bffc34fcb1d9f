package services

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
)

// TaskService: task มองเห็นได้โดยผู้สร้างหรือผู้ได้รับมอบหมายเท่านั้น
// ลบได้เฉพาะผู้สร้าง (assignee ได้ Forbidden, คนอื่นได้ NotFound)
type TaskService interface {
	ListOwned(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]dto.TaskDetailResponse, error)
	ListAssigned(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]dto.TaskDetailResponse, error)
	GetByID(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateTaskRequest, userID uuid.UUID) (*dto.TaskDetailResponse, error)
	Update(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest, userID uuid.UUID) error
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
	ToggleCompletion(ctx context.Context, taskID, userID uuid.UUID, completed bool) error
}
