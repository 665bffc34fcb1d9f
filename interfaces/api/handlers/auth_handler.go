package handlers

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	logger.InfoContext(ctx, "Registration attempt", "username", req.Username)

	userID, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "username", req.Username, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", userID)

	return utils.CreatedResponse(c, dto.RegisterResponse{
		Message: "Registration successful",
		UserID:  userID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "username", req.Username, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Login successful", "user_id", resp.UserID)

	return utils.SuccessResponse(c, resp)
}

// Logout revoke token ปัจจุบัน (ใช้ jti ของ token)
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.authService.Logout(ctx, user.TokenID, user.ExpiresAt); err != nil {
		logger.WarnContext(ctx, "Logout failed", "user_id", user.ID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "User logged out", "user_id", user.ID)

	return utils.SuccessResponse(c, dto.LogoutResponse{Message: "Logged out"})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.authService.GetProfile(ctx, user.ID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, profile)
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	logger.InfoContext(ctx, "Account deletion attempt", "user_id", user.ID)

	if err := h.authService.DeleteAccount(ctx, user.ID); err != nil {
		logger.WarnContext(ctx, "Account deletion failed", "user_id", user.ID, "error", err)
		return HandleServiceError(c, err)
	}

	// token ที่ยังไม่หมดอายุไม่ควรใช้ต่อได้
	if err := h.authService.Logout(ctx, user.TokenID, user.ExpiresAt); err != nil {
		logger.WarnContext(ctx, "Failed to revoke token after account deletion", "user_id", user.ID, "error", err)
	}

	logger.InfoContext(ctx, "Account deleted", "user_id", user.ID)

	return utils.NoContentResponse(c)
}
