package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/ports"
	"task-manager-api/pkg/scheduler"
)

type recordingScheduler struct {
	scheduler.EventScheduler
	jobs map[string]string
	task func()
}

func (s *recordingScheduler) AddJob(id, cronExpr string, task func()) error {
	s.jobs[id] = cronExpr
	s.task = task
	return nil
}

func TestOverdueReminderRegistersJob(t *testing.T) {
	env := newTestEnv(t)
	sched := &recordingScheduler{jobs: map[string]string{}}

	service := NewOverdueReminderService(OverdueReminderConfig{}, env.taskRepo, env.events, sched)
	require.NoError(t, service.RegisterJob())
	assert.Equal(t, "*/15 * * * *", sched.jobs[overdueReminderJobID])
	require.NotNil(t, sched.task)

	// job ที่ลงทะเบียนไว้ทำงานได้แม้ยังไม่มี task
	sched.task()
	assert.Empty(t, env.events.types())
}

func TestOverdueReminderRunScan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	past := env.clock.Now().Add(-2 * time.Hour)
	future := env.clock.Now().Add(2 * time.Hour)

	ownOverdue, err := env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Pay rent", DueDate: &past}, alice.ID)
	require.NoError(t, err)
	assignedOverdue, err := env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Mow lawn", DueDate: &past, AssignedToUserID: &bob.ID}, alice.ID)
	require.NoError(t, err)
	doneOverdue, err := env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Old chore", DueDate: &past}, alice.ID)
	require.NoError(t, err)
	require.NoError(t, env.tasks.ToggleCompletion(ctx, doneOverdue.ID, alice.ID, true))
	_, err = env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Later", DueDate: &future}, alice.ID)
	require.NoError(t, err)
	_, err = env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Someday"}, alice.ID)
	require.NoError(t, err)
	env.events.reset()

	service := &OverdueReminderService{
		config:   OverdueReminderConfig{BatchSize: 10},
		taskRepo: env.taskRepo,
		events:   env.events,
		now:      env.clock.Now,
	}

	published, err := service.RunScan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, published)

	recipients := map[string]string{}
	for _, event := range env.events.events {
		assert.Equal(t, ports.TaskEventOverdue, event.Type)
		assert.Empty(t, event.ActorID)
		recipients[event.TaskID] = event.RecipientID
	}
	assert.Equal(t, map[string]string{
		ownOverdue.ID.String():      alice.ID.String(),
		assignedOverdue.ID.String(): bob.ID.String(),
	}, recipients)
}

func TestOverdueReminderWithoutPublisher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	past := env.clock.Now().Add(-time.Hour)

	_, err := env.tasks.Create(ctx, &dto.CreateTaskRequest{Title: "Pay rent", DueDate: &past}, alice.ID)
	require.NoError(t, err)

	service := &OverdueReminderService{
		config:   OverdueReminderConfig{BatchSize: 10},
		taskRepo: env.taskRepo,
		now:      env.clock.Now,
	}

	published, err := service.RunScan(ctx)
	require.NoError(t, err)
	assert.Zero(t, published)
}
