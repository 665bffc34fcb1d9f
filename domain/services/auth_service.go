package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (uuid.UUID, error)
	// Authenticate คืน Unauthorized แบบเดียวกันทุกกรณี (ไม่บอกว่าผิดที่ username หรือ password)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
