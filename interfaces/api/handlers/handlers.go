package handlers

import (
	"gorm.io/gorm"

	"task-manager-api/domain/services"
	natspkg "task-manager-api/infrastructure/nats"
	"task-manager-api/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService     services.AuthService
	TaskService     services.TaskService
	CategoryService services.CategoryService

	// Health checks (optional ones may be nil)
	DB         *gorm.DB
	NATSClient *natspkg.Client
	Scheduler  scheduler.EventScheduler
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler     *AuthHandler
	TaskHandler     *TaskHandler
	CategoryHandler *CategoryHandler
	HealthHandler   *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:     NewAuthHandler(services.AuthService),
		TaskHandler:     NewTaskHandler(services.TaskService),
		CategoryHandler: NewCategoryHandler(services.CategoryService),
		HealthHandler:   NewHealthHandler(services.DB, services.NATSClient, services.Scheduler),
	}
}
