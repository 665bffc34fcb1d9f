package routes

import (
	"github.com/gofiber/fiber/v2"

	"task-manager-api/interfaces/api/handlers"
)

// SetupMonitoringRoutes sets up the monitoring routes
// GET /api/v1/monitoring/events - JetStream stream ของ task events
// GET /api/v1/monitoring/jobs - scheduled jobs
func SetupMonitoringRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	monitoring := api.Group("/monitoring", protected)

	monitoring.Get("/events", h.HealthHandler.GetEventStreamStatus)
	monitoring.Get("/jobs", h.HealthHandler.ListJobs)
}
