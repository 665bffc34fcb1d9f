package services

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
)

// CategoryService ทุก operation ผูกกับเจ้าของ; category ของคนอื่นถือว่า NotFound
type CategoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryResponse, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*dto.CategoryResponse, error)
	Create(ctx context.Context, req *dto.CreateCategoryRequest, userID uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
