package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
)

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("User").Create(category).Error
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) FilterOwnedIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	var owned []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Pluck("id", &owned).Error
	if err != nil {
		return nil, err
	}

	ownedSet := make(map[uuid.UUID]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	result := make([]uuid.UUID, 0, len(owned))
	for _, id := range ids {
		if _, ok := ownedSet[id]; !ok {
			continue
		}
		result = append(result, id)
		delete(ownedSet, id) // กัน id ซ้ำ
	}
	return result, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *models.Category) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"color":       category.Color,
		})
	return result.RowsAffected, result.Error
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Category{}).Select("id").Where("id = ? AND user_id = ?", id, userID)
		if err := tx.Where("category_id IN (?)", owned).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}
