package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
)

// SetupRoutes protected คือ middleware.Protected ที่ตั้งค่า JWT และ blacklist แล้ว
func SetupRoutes(app *fiber.App, h *handlers.Handlers, protected fiber.Handler) {
	// Setup health and root routes
	SetupHealthRoutes(app, h)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)
	SetupCategoryRoutes(api, h, protected)
	SetupMonitoringRoutes(api, h, protected)
}
