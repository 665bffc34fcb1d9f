package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
)

// categories เป็นของแต่ละ user ทุก route จึงต้อง login
func SetupCategoryRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	categories := api.Group("/categories", protected)
	categories.Get("/", h.CategoryHandler.ListCategories)
	categories.Post("/", h.CategoryHandler.CreateCategory)
	categories.Get("/:id", h.CategoryHandler.GetCategory)
	categories.Put("/:id", h.CategoryHandler.UpdateCategory)
	categories.Delete("/:id", h.CategoryHandler.DeleteCategory)
}
