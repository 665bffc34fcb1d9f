package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/apperror"
	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
)

const categoryNotFound = "category not found"

type CategoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) services.CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list categories", "user_id", userID, "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}
	return dto.CategoriesToCategoryResponses(categories), nil
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fromRepoError(err, categoryNotFound)
	}
	return dto.CategoryToCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) Create(ctx context.Context, req *dto.CreateCategoryRequest, userID uuid.UUID) (*dto.CategoryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		UserID:      userID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to create category", "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}

	logger.InfoContext(ctx, "Category created", "category_id", category.ID, "name", category.Name)
	return dto.CategoryToCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest, userID uuid.UUID) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	category, err := s.categoryRepo.GetByID(ctx, id, userID)
	if err != nil {
		logger.WarnContext(ctx, "Category not found for update", "category_id", id)
		return fromRepoError(err, categoryNotFound)
	}

	if req.Name.HasValue() && req.Name.Value != "" {
		category.Name = req.Name.Value
	}
	if req.Description.HasValue() {
		category.Description = req.Description.Value
	}
	if req.Color.HasValue() {
		category.Color = req.Color.Value
	}

	affected, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update category", "category_id", id, "error", err)
		return apperror.Persistence("operation failed", err)
	}
	if affected == 0 {
		return apperror.Persistence("operation failed", nil)
	}

	logger.InfoContext(ctx, "Category updated", "category_id", id)
	return nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, id, userID); err != nil {
		logger.WarnContext(ctx, "Category not found for delete", "category_id", id)
		return fromRepoError(err, categoryNotFound)
	}

	affected, err := s.categoryRepo.Delete(ctx, id, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete category", "category_id", id, "error", err)
		return apperror.Persistence("operation failed", err)
	}
	if affected == 0 {
		return apperror.Persistence("operation failed", nil)
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}
