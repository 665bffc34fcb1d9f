package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListOwned GET /tasks: task ที่ผู้ใช้สร้าง
func (h *TaskHandler) ListOwned(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	filter, problems := parseTaskFilter(c)
	if problems != nil {
		logger.WarnContext(ctx, "Invalid task filter", "errors", problems)
		return utils.ValidationErrorResponse(c, problems)
	}

	tasks, err := h.taskService.ListOwned(ctx, user.ID, filter)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, tasks)
}

// ListAssigned GET /tasks/assigned: task ที่ถูกมอบหมายให้ผู้ใช้
func (h *TaskHandler) ListAssigned(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	filter, problems := parseTaskFilter(c)
	if problems != nil {
		logger.WarnContext(ctx, "Invalid task filter", "errors", problems)
		return utils.ValidationErrorResponse(c, problems)
	}

	tasks, err := h.taskService.ListAssigned(ctx, user.ID, filter)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.GetByID(ctx, taskID, user.ID)
	if err != nil {
		return HandleServiceError(c, err)
	}

	return utils.SuccessResponse(c, task)
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	logger.InfoContext(ctx, "Task creation attempt", "user_id", user.ID, "title", req.Title)

	task, err := h.taskService.Create(ctx, &req, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "user_id", user.ID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", user.ID)

	return utils.CreatedResponse(c, task)
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := h.taskService.Update(ctx, taskID, &req, user.ID); err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", user.ID)

	return utils.NoContentResponse(c)
}

func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	return h.setCompleted(c, true)
}

func (h *TaskHandler) UncompleteTask(c *fiber.Ctx) error {
	return h.setCompleted(c, false)
}

func (h *TaskHandler) setCompleted(c *fiber.Ctx, completed bool) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.ToggleCompletion(ctx, taskID, user.ID, completed); err != nil {
		return HandleServiceError(c, err)
	}

	return utils.NoContentResponse(c)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logger.WarnContext(ctx, "Invalid task ID", "task_id", c.Params("id"))
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	logger.InfoContext(ctx, "Task deletion attempt", "task_id", taskID, "user_id", user.ID)

	if err := h.taskService.Delete(ctx, taskID, user.ID); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return HandleServiceError(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)

	return utils.NoContentResponse(c)
}
