package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	natspkg "task-manager-api/infrastructure/nats"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/scheduler"
	"task-manager-api/pkg/utils"
)

// HealthHandler รายงานสถานะของ database, NATS และ scheduler
type HealthHandler struct {
	db        *gorm.DB
	nats      *natspkg.Client
	scheduler scheduler.EventScheduler
}

func NewHealthHandler(db *gorm.DB, natsClient *natspkg.Client, eventScheduler scheduler.EventScheduler) *HealthHandler {
	return &HealthHandler{
		db:        db,
		nats:      natsClient,
		scheduler: eventScheduler,
	}
}

// HealthCheck GET /health
// database ล่มคือ 503, NATS/scheduler เป็นข้อมูลประกอบเท่านั้น
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK

	database := "ok"
	if h.db == nil {
		database = "unavailable"
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		database = "unavailable"
	}
	if database != "ok" {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"database":  database,
		"nats":      h.nats != nil && h.nats.IsConnected(),
		"scheduler": h.scheduler != nil && h.scheduler.IsRunning(),
	})
}

// GetEventStreamStatus GET /api/v1/monitoring/events
// ดึงสถานะของ JetStream stream ที่ใช้ส่ง task events
func (h *HealthHandler) GetEventStreamStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.nats == nil {
		logger.WarnContext(ctx, "NATS client not available")
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "NATS not available", nil)
	}

	status, err := h.nats.GetStatus(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get event stream status", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, status)
}

// ListJobs GET /api/v1/monitoring/jobs
func (h *HealthHandler) ListJobs(c *fiber.Ctx) error {
	if h.scheduler == nil {
		return utils.SuccessResponse(c, []*scheduler.JobInfo{})
	}

	jobs := make([]*scheduler.JobInfo, 0)
	for _, job := range h.scheduler.ListJobs() {
		jobs = append(jobs, job)
	}
	return utils.SuccessResponse(c, jobs)
}
