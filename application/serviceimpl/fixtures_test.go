package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"task-manager-api/domain/models"
	"task-manager-api/domain/ports"
	"task-manager-api/domain/repositories"
	"task-manager-api/infrastructure/database"
	"task-manager-api/pkg/testutil"
	"task-manager-api/pkg/utils"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.TaskEvent
	err    error
}

func (p *recordingPublisher) PublishTaskEvent(_ context.Context, event *ports.TaskEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []ports.TaskEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]ports.TaskEventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type memoryBlacklist struct {
	revoked map[string]time.Time
	err     error
}

func (b *memoryBlacklist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if b.err != nil {
		return b.err
	}
	b.revoked[tokenID] = expiresAt
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := b.revoked[tokenID]
	return ok, nil
}

type testEnv struct {
	db           *gorm.DB
	clock        *fakeClock
	events       *recordingPublisher
	blacklist    *memoryBlacklist
	userRepo     repositories.UserRepository
	taskRepo     repositories.TaskRepository
	categoryRepo repositories.CategoryRepository
	auth         *AuthServiceImpl
	tasks        *TaskServiceImpl
	categories   *CategoryServiceImpl
}

var testJWTConfig = utils.JWTConfig{
	Secret:   "test-secret",
	Issuer:   "task-manager-api",
	Audience: "task-manager-clients",
	TTL:      3 * time.Hour,
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	clock := &fakeClock{now: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)}
	events := &recordingPublisher{}
	blacklist := &memoryBlacklist{revoked: map[string]time.Time{}}

	userRepo := database.NewUserRepository(db)
	taskRepo := database.NewTaskRepository(db)
	categoryRepo := database.NewCategoryRepository(db)

	return &testEnv{
		db:           db,
		clock:        clock,
		events:       events,
		blacklist:    blacklist,
		userRepo:     userRepo,
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		auth: &AuthServiceImpl{
			userRepo:  userRepo,
			hasher:    utils.HMACSHA512Hasher{},
			jwtConfig: testJWTConfig,
			blacklist: blacklist,
			now:       clock.Now,
		},
		tasks: &TaskServiceImpl{
			taskRepo:     taskRepo,
			categoryRepo: categoryRepo,
			userRepo:     userRepo,
			events:       events,
			now:          clock.Now,
		},
		categories: &CategoryServiceImpl{categoryRepo: categoryRepo},
	}
}

// createUser inserts a user with password "secret1".
func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	hash, err := utils.HMACSHA512Hasher{}.Hash("secret1")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    e.clock.Now(),
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func (e *testEnv) createCategory(t *testing.T, owner uuid.UUID, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, UserID: owner}
	require.NoError(t, e.categoryRepo.Create(context.Background(), category))
	return category
}

func ptr[T any](v T) *T {
	return &v
}

var errBroker = errors.New("broker unavailable")
