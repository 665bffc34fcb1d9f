package services

import "context"

type OverdueReminderService interface {
	RegisterJob() error
	// RunScan publishes one task.overdue event per overdue task and returns how many were published.
	RunScan(ctx context.Context) (int, error)
}
