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

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	hasher    utils.PasswordHasher
	jwtConfig utils.JWTConfig
	blacklist ports.TokenBlacklist // nil = logout ไม่ revoke token
	now       func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	hasher utils.PasswordHasher,
	jwtConfig utils.JWTConfig,
	blacklist ports.TokenBlacklist,
) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		hasher:    hasher,
		jwtConfig: jwtConfig,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (uuid.UUID, error) {
	if err := validateRequest(req); err != nil {
		return uuid.Nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to check existing user", "error", err)
		return uuid.Nil, apperror.Persistence("operation failed", err)
	}
	if exists {
		logger.WarnContext(ctx, "Username or email already exists", "username", req.Username)
		return uuid.Nil, apperror.Conflict("username or email already exists")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return uuid.Nil, apperror.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// สมัครพร้อมกันจนหลุด check ด้านบน: unique index เป็นด่านสุดท้าย
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.WarnContext(ctx, "Username or email already exists", "username", req.Username)
			return uuid.Nil, apperror.Conflict("username or email already exists")
		}
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return uuid.Nil, apperror.Persistence("operation failed", err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user.ID, nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Login failed - username not found", "username", username)
			return nil, apperror.Unauthorized()
		}
		logger.ErrorContext(ctx, "Failed to load user for login", "error", err)
		return nil, apperror.Persistence("operation failed", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		logger.WarnContext(ctx, "Login failed - stored password hash is malformed", "user_id", user.ID)
		return nil, apperror.Unauthorized()
	}
	if !ok {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, apperror.Unauthorized()
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return nil, apperror.Unauthorized()
	}

	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	issued, err := utils.GenerateToken(s.jwtConfig, user.ID, user.Username, user.Email, s.now())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return nil, apperror.Internal("failed to issue token", err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return &dto.LoginResponse{
		Token:     issued.Token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.blacklist == nil {
		logger.DebugContext(ctx, "Token blacklist not configured, logout is client-side only")
		return nil
	}
	if tokenID == "" {
		return apperror.Validation("token has no id", nil)
	}

	if err := s.blacklist.Revoke(ctx, tokenID, expiresAt); err != nil {
		logger.ErrorContext(ctx, "Failed to revoke token", "error", err)
		return apperror.Internal("failed to revoke token", err)
	}

	logger.InfoContext(ctx, "Token revoked", "jti", tokenID)
	return nil
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fromRepoError(err, "user not found")
	}
	return dto.UserToUserResponse(user), nil
}

func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return fromRepoError(err, "user not found")
	}

	// ผู้สร้าง task ห้ามถูกลบ (task ไม่ถูก cascade ตาม user)
	created, err := s.userRepo.CountCreatedTasks(ctx, userID)
	if err != nil {
		return apperror.Persistence("operation failed", err)
	}
	if created > 0 {
		logger.WarnContext(ctx, "Refusing to delete user with created tasks", "user_id", userID, "tasks", created)
		return apperror.Conflict("user still has created tasks")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete user", "user_id", userID, "error", err)
		return fromRepoError(err, "user not found")
	}

	logger.InfoContext(ctx, "User deleted", "user_id", userID)
	return nil
}
