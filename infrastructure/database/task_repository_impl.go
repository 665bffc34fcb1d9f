package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// withDetails preload ทุกอย่างที่ task detail ต้องใช้
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("AssignedToUser").
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.name ASC")
		})
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task, categoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return insertTaskLinks(tx, task.ID, categoryIDs)
	})
}

func (r *TaskRepositoryImpl) GetVisible(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := withDetails(r.db.WithContext(ctx)).
		Where("tasks.id = ? AND (tasks.user_id = ? OR tasks.assigned_to_user_id = ?)", taskID, userID, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByCreator(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]*models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("tasks.user_id = ?", userID)
	return r.list(query, filter)
}

func (r *TaskRepositoryImpl) ListByAssignee(ctx context.Context, userID uuid.UUID, filter *dto.TaskFilter) ([]*models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("tasks.assigned_to_user_id = ?", userID)
	return r.list(query, filter)
}

func (r *TaskRepositoryImpl) list(query *gorm.DB, filter *dto.TaskFilter) ([]*models.Task, error) {
	query = applyTaskFilter(query, filter)

	var tasks []*models.Task
	err := withDetails(query).
		Order("tasks.created_at DESC").
		Order("tasks.id DESC").
		Find(&tasks).Error
	return tasks, err
}

// applyTaskFilter field ที่เป็น nil ไม่กรอง
func applyTaskFilter(query *gorm.DB, filter *dto.TaskFilter) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.IsCompleted != nil {
		query = query.Where("tasks.is_completed = ?", *filter.IsCompleted)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}

	// Due date range (inclusive)
	if filter.DueDateFrom != nil {
		query = query.Where("tasks.due_date >= ?", filter.DueDateFrom.UTC())
	}
	if filter.DueDateTo != nil {
		query = query.Where("tasks.due_date <= ?", filter.DueDateTo.UTC())
	}

	// อยู่ในอย่างน้อยหนึ่ง category ที่ระบุ
	if len(filter.CategoryIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM task_categories tc WHERE tc.task_id = tasks.id AND tc.category_id IN ?)",
			filter.CategoryIDs,
		)
	}

	return query
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task, categoryIDs []uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// map แทน struct เพื่อให้เขียนค่า nil (ล้าง field) ได้
		result := tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"title":               task.Title,
				"description":         task.Description,
				"due_date":            task.DueDate,
				"priority":            task.Priority,
				"assigned_to_user_id": task.AssignedToUserID,
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 || categoryIDs == nil {
			return nil
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}
		return insertTaskLinks(tx, task.ID, categoryIDs)
	})
	return affected, err
}

func (r *TaskRepositoryImpl) SetCompleted(ctx context.Context, taskID uuid.UUID, completed bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("is_completed", completed)
	return result.RowsAffected, result.Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", taskID).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (r *TaskRepositoryImpl) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("AssignedToUser").
		Where("is_completed = ? AND due_date IS NOT NULL AND due_date < ?", false, now.UTC()).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func insertTaskLinks(tx *gorm.DB, taskID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]models.TaskCategory, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		links[i] = models.TaskCategory{TaskID: taskID, CategoryID: categoryID}
	}
	return tx.Create(&links).Error
}
