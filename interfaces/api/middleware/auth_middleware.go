package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"task-manager-api/domain/ports"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

// Protected middleware validates JWT tokens and sets user context.
// blacklist อาจเป็น nil (ไม่มี Redis) ซึ่งหมายความว่าไม่ตรวจ token ที่ logout แล้ว
func Protected(jwtConfig utils.JWTConfig, blacklist ports.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateToken(token, jwtConfig)
		if err != nil {
			logger.WarnContext(ctx, "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		if blacklist != nil && userCtx.TokenID != "" {
			revoked, err := blacklist.IsRevoked(ctx, userCtx.TokenID)
			if err != nil {
				logger.ErrorContext(ctx, "Token revocation check failed", "error", err)
				return utils.InternalServerErrorResponse(c)
			}
			if revoked {
				return utils.UnauthorizedResponse(c, "Token has been revoked")
			}
		}

		c.Locals("user", userCtx)
		c.SetUserContext(logger.ContextWithUserID(ctx, userCtx.ID.String()))

		return c.Next()
	}
}
