package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
)

// TaskRepository returns tasks with User, AssignedToUser and Categories preloaded.
// Every read takes the acting user id explicitly; there is no ambient scope.
type TaskRepository interface {
	// Create inserts the task and its category links in one transaction.
	Create(ctx context.Context, task *models.Task, categoryIDs []uuid.UUID) error
	// GetVisible returns the task only if userID is its creator or assignee (gorm.ErrRecordNotFound otherwise).
	GetVisible(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]*models.Task, error)
	ListByAssignee(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]*models.Task, error)
	// Update writes the scalar columns of task. When categoryIDs is non-nil the links are replaced
	// with it in the same transaction. Returns the number of task rows affected.
	Update(ctx context.Context, task *models.Task, categoryIDs []uuid.UUID) (int64, error)
	SetCompleted(ctx context.Context, taskID uuid.UUID, completed bool) (int64, error)
	// Delete removes the task and its category links. Returns the number of task rows affected.
	Delete(ctx context.Context, taskID uuid.UUID) (int64, error)
	// ListOverdue returns incomplete tasks whose due date is before now.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*models.Task, error)
}
