package repositories

import (
	"context"

	"github.com/google/uuid"
	"task-manager-api/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// ExistsByUsernameOrEmail matches either field case-insensitively.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	CountCreatedTasks(ctx context.Context, id uuid.UUID) (int64, error)
	// Delete clears task assignments to the user and removes the user's categories
	// (with their task links) before removing the user, in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
