package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/apperror"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/scheduler"
)

const overdueReminderJobID = "overdue_reminder"

// OverdueReminderConfig การตั้งค่าสำหรับ overdue scan
type OverdueReminderConfig struct {
	Cron      string // cron expression (default: "*/15 * * * *")
	BatchSize int    // จำนวน task สูงสุดต่อรอบ (default: 500)
}

// OverdueReminderService publishes task.overdue for incomplete tasks past their due date.
// A task keeps being reported on every run until it is completed or its due date moves;
// consumers dedupe by task id.
type OverdueReminderService struct {
	config    OverdueReminderConfig
	taskRepo  repositories.TaskRepository
	events    ports.TaskEventPublisher
	scheduler scheduler.EventScheduler
	now       func() time.Time
}

var _ services.OverdueReminderService = (*OverdueReminderService)(nil)

func NewOverdueReminderService(
	config OverdueReminderConfig,
	taskRepo repositories.TaskRepository,
	events ports.TaskEventPublisher,
	eventScheduler scheduler.EventScheduler,
) services.OverdueReminderService {
	service := &OverdueReminderService{
		config:    config,
		taskRepo:  taskRepo,
		events:    events,
		scheduler: eventScheduler,
		now:       time.Now,
	}

	// Set defaults
	if service.config.Cron == "" {
		service.config.Cron = "*/15 * * * *"
	}
	if service.config.BatchSize <= 0 {
		service.config.BatchSize = 500
	}

	return service
}

// RegisterJob registers the scan with the scheduler
func (s *OverdueReminderService) RegisterJob() error {
	return s.scheduler.AddJob(overdueReminderJobID, s.config.Cron, func() {
		ctx := logger.ContextWithRequestID(context.Background(), "job-"+uuid.NewString())
		if _, err := s.RunScan(ctx); err != nil {
			logger.ErrorContext(ctx, "Overdue scan failed", "error", err)
		}
	})
}

func (s *OverdueReminderService) RunScan(ctx context.Context) (int, error) {
	now := s.now().UTC()

	tasks, err := s.taskRepo.ListOverdue(ctx, now, s.config.BatchSize)
	if err != nil {
		return 0, apperror.Persistence("operation failed", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}
	if s.events == nil {
		logger.WarnContext(ctx, "Overdue tasks found but no event publisher configured", "count", len(tasks))
		return 0, nil
	}

	published := 0
	for _, task := range tasks {
		event := newTaskEvent(ports.TaskEventOverdue, task, uuid.Nil, now)
		// ส่งถึง assignee ถ้ามี ไม่งั้นส่งถึงผู้สร้าง
		event.RecipientID = task.UserID.String()
		if task.AssignedToUserID != nil {
			event.RecipientID = task.AssignedToUserID.String()
		}
		if publishTaskEvent(ctx, s.events, event) {
			published++
		}
	}

	logger.InfoContext(ctx, "Overdue scan completed", "overdue", len(tasks), "published", published)
	return published, nil
}
