package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	tasks := api.Group("/tasks", protected)
	tasks.Get("/", h.TaskHandler.ListOwned)
	tasks.Get("/assigned", h.TaskHandler.ListAssigned) // ต้องมาก่อน /:id
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id/complete", h.TaskHandler.CompleteTask)
	tasks.Patch("/:id/uncomplete", h.TaskHandler.UncompleteTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
