package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	categories, err := h.categoryService.List(c.UserContext(), user.ID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, categories)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid category ID")
	}

	category, err := h.categoryService.GetByID(c.UserContext(), categoryID, user.ID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	category, err := h.categoryService.Create(ctx, &req, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Category creation failed", "user_id", user.ID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Category created", "category_id", category.ID, "user_id", user.ID)

	return utils.CreatedResponse(c, category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid category ID")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := h.categoryService.Update(ctx, categoryID, &req, user.ID); err != nil {
		logger.WarnContext(ctx, "Category update failed", "category_id", categoryID, "error", err)
		return HandleServiceError(c, err)
	}

	return utils.NoContentResponse(c)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid category ID")
	}

	if err := h.categoryService.Delete(ctx, categoryID, user.ID); err != nil {
		logger.WarnContext(ctx, "Category deletion failed", "category_id", categoryID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", categoryID, "user_id", user.ID)

	return utils.NoContentResponse(c)
}
