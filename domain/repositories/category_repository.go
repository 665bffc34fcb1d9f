package repositories

import (
	"context"

	"github.com/google/uuid"
	"task-manager-api/domain/models"
)

// CategoryRepository is always scoped by owner; a category of another user behaves as missing.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	// FilterOwnedIDs returns the subset of ids owned by userID, keeping the input order and dropping duplicates.
	FilterOwnedIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, category *models.Category) (int64, error)
	// Delete removes the category and the task links pointing at it.
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
