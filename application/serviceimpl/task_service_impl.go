package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-manager-api/domain/apperror"
	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

const taskNotFound = "task not found"

type TaskServiceImpl struct {
	taskRepo     repositories.TaskRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	events       ports.TaskEventPublisher // optional
	now          func() time.Time
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	categoryRepo repositories.CategoryRepository,
	userRepo repositories.UserRepository,
	events ports.TaskEventPublisher,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		events:       events,
		now:          time.Now,
	}
}

func (s *TaskServiceImpl) ListOwned(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]dto.TaskDetailResponse, error) {
	if err := validateTaskFilter(filter); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByCreator(ctx, userID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list owned tasks", "user_id", userID, "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}
	return dto.TasksToDetailResponses(tasks), nil
}

func (s *TaskServiceImpl) ListAssigned(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]dto.TaskDetailResponse, error) {
	if err := validateTaskFilter(filter); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByAssignee(ctx, userID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list assigned tasks", "user_id", userID, "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}
	return dto.TasksToDetailResponses(tasks), nil
}

func validateTaskFilter(filter *dto.TaskFilter) error {
	if filter == nil {
		return nil
	}
	if filter.Priority != nil && (*filter.Priority < 1 || *filter.Priority > 3) {
		return apperror.Validation("priority must be between 1 and 3", nil)
	}
	if filter.DueDateFrom != nil && filter.DueDateTo != nil && filter.DueDateFrom.After(*filter.DueDateTo) {
		return apperror.Validation("dueDateFrom must not be after dueDateTo", nil)
	}
	return nil
}

func (s *TaskServiceImpl) GetByID(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.GetVisible(ctx, taskID, userID)
	if err != nil {
		return nil, fromRepoError(err, taskNotFound)
	}
	return dto.TaskToDetailResponse(task), nil
}

func (s *TaskServiceImpl) Create(ctx context.Context, req *dto.CreateTaskRequest, userID uuid.UUID) (*dto.TaskDetailResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.AssignedToUserID != nil {
		if err := s.ensureUserExists(ctx, *req.AssignedToUserID); err != nil {
			return nil, err
		}
	}

	// category ที่ไม่ใช่ของ user ถูกตัดทิ้งเงียบๆ
	categoryIDs, err := s.categoryRepo.FilterOwnedIDs(ctx, req.CategoryIDs, userID)
	if err != nil {
		return nil, apperror.Persistence("operation failed", err)
	}

	task := &models.Task{
		Title:            req.Title,
		Description:      req.Description,
		IsCompleted:      false,
		CreatedAt:        s.now().UTC(),
		DueDate:          toUTC(req.DueDate),
		Priority:         req.Priority,
		UserID:           userID,
		AssignedToUserID: req.AssignedToUserID,
	}

	if err := s.taskRepo.Create(ctx, task, categoryIDs); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}

	created, err := s.taskRepo.GetVisible(ctx, task.ID, userID)
	if err != nil {
		return nil, fromRepoError(err, taskNotFound)
	}

	logger.InfoContext(ctx, "Task created", "task_id", created.ID, "user_id", userID)

	now := s.now().UTC()
	publishTaskEvent(ctx, s.events, newTaskEvent(ports.TaskEventCreated, created, userID, now))
	if created.AssignedToUserID != nil {
		publishTaskEvent(ctx, s.events, newTaskEvent(ports.TaskEventAssigned, created, userID, now))
	}

	return dto.TaskToDetailResponse(created), nil
}

func (s *TaskServiceImpl) Update(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest, userID uuid.UUID) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	task, err := s.taskRepo.GetVisible(ctx, taskID, userID)
	if err != nil {
		return fromRepoError(err, taskNotFound)
	}
	previousAssignee := task.AssignedToUserID

	// title ว่างถือว่าไม่ได้ส่งมา
	if req.Title.HasValue() && req.Title.Value != "" {
		task.Title = req.Title.Value
	}
	// description ว่างคือการล้างค่า, null คือไม่เปลี่ยน
	if req.Description.HasValue() {
		task.Description = req.Description.Value
	}
	// ไม่ส่งมา = คงค่าเดิม, null = ล้างค่า
	if req.DueDate.Set {
		task.DueDate = toUTC(req.DueDate.Ptr())
	}
	if req.Priority.Set {
		task.Priority = req.Priority.Ptr()
	}
	if req.AssignedToUserID.Set {
		if req.AssignedToUserID.HasValue() {
			if err := s.ensureUserExists(ctx, req.AssignedToUserID.Value); err != nil {
				return err
			}
		}
		task.AssignedToUserID = req.AssignedToUserID.Ptr()
	}

	// nil = ไม่แตะ category, slice (แม้ว่าง) = แทนที่ทั้งชุด
	// category ต้องเป็นของผู้สร้าง task เสมอ แม้ assignee จะเป็นคนแก้
	var categoryIDs []uuid.UUID
	if req.CategoryIDs.HasValue() {
		categoryIDs, err = s.categoryRepo.FilterOwnedIDs(ctx, req.CategoryIDs.Value, task.UserID)
		if err != nil {
			return apperror.Persistence("operation failed", err)
		}
	}

	affected, err := s.taskRepo.Update(ctx, task, categoryIDs)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return apperror.Persistence("operation failed", err)
	}
	if affected == 0 {
		logger.WarnContext(ctx, "Task update affected no rows", "task_id", taskID)
		return apperror.Persistence("operation failed", nil)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)

	now := s.now().UTC()
	publishTaskEvent(ctx, s.events, newTaskEvent(ports.TaskEventUpdated, task, userID, now))
	if task.AssignedToUserID != nil && !sameUser(previousAssignee, task.AssignedToUserID) {
		publishTaskEvent(ctx, s.events, newTaskEvent(ports.TaskEventAssigned, task, userID, now))
	}

	return nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.taskRepo.GetVisible(ctx, taskID, userID)
	if err != nil {
		return fromRepoError(err, taskNotFound)
	}

	// assignee เห็น task ได้แต่ลบไม่ได้
	if !task.IsCreator(userID) {
		logger.WarnContext(ctx, "Assignee attempted to delete task", "task_id", taskID, "user_id", userID)
		return apperror.Forbidden("only the creator can delete this task")
	}

	affected, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return apperror.Persistence("operation failed", err)
	}
	if affected == 0 {
		return apperror.Persistence("operation failed", nil)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	publishTaskEvent(ctx, s.events, newTaskEvent(ports.TaskEventDeleted, task, userID, s.now().UTC()))
	return nil
}

func (s *TaskServiceImpl) ToggleCompletion(ctx context.Context, taskID, userID uuid.UUID, completed bool) error {
	task, err := s.taskRepo.GetVisible(ctx, taskID, userID)
	if err != nil {
		return fromRepoError(err, taskNotFound)
	}
	wasCompleted := task.IsCompleted

	affected, err := s.taskRepo.SetCompleted(ctx, taskID, completed)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set task completion", "task_id", taskID, "error", err)
		return apperror.Persistence("operation failed", err)
	}
	if affected == 0 {
		return apperror.Persistence("operation failed", nil)
	}

	if wasCompleted == completed {
		return nil
	}

	task.IsCompleted = completed
	eventType := ports.TaskEventReopened
	if completed {
		eventType = ports.TaskEventCompleted
	}
	logger.InfoContext(ctx, "Task completion changed", "task_id", taskID, "completed", completed)
	publishTaskEvent(ctx, s.events, newTaskEvent(eventType, task, userID, s.now().UTC()))
	return nil
}

func (s *TaskServiceImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Validation("assigned user does not exist", []utils.ValidationError{
				{Field: "assignedToUserId", Tag: "exists", Message: "assigned user does not exist"},
			})
		}
		return apperror.Persistence("operation failed", err)
	}
	return nil
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func sameUser(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
