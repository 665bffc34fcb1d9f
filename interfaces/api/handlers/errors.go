package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"task-manager-api/domain/apperror"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

// HandleServiceError แปลง apperror เป็น HTTP response
func HandleServiceError(c *fiber.Ctx, err error) error {
	ctx := c.UserContext()

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.ErrorContext(ctx, "Unhandled service error", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.ErrCodeValidation, appErr.Message, appErr.Details)
	case apperror.KindConflict:
		return utils.ConflictResponse(c, appErr.Message)
	case apperror.KindUnauthorized:
		return utils.UnauthorizedResponse(c, appErr.Message)
	case apperror.KindNotFound:
		return utils.NotFoundResponse(c, appErr.Message)
	case apperror.KindForbidden:
		return utils.ForbiddenResponse(c, appErr.Message)
	case apperror.KindPersistence:
		logger.ErrorContext(ctx, "Persistence failure", "error", err)
		return utils.PersistenceErrorResponse(c)
	default:
		logger.ErrorContext(ctx, "Internal error", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}
