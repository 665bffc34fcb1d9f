package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/application/serviceimpl"
	"task-manager-api/infrastructure/database"
	"task-manager-api/interfaces/api/handlers"
	"task-manager-api/interfaces/api/middleware"
	"task-manager-api/interfaces/api/routes"
	"task-manager-api/pkg/testutil"
	"task-manager-api/pkg/utils"
)

type memoryBlacklist struct {
	revoked map[string]bool
}

func (b *memoryBlacklist) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	b.revoked[tokenID] = true
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return b.revoked[tokenID], nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                  `json:"code"`
		Message string                  `json:"message"`
		Details []utils.ValidationError `json:"details"`
	} `json:"error"`
}

var jwtConfig = utils.JWTConfig{
	Secret:   "handler-test-secret",
	Issuer:   "task-manager-api",
	Audience: "task-manager-clients",
	TTL:      time.Hour,
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.NewTestDB(t)

	userRepo := database.NewUserRepository(db)
	taskRepo := database.NewTaskRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	hasher, err := utils.NewPasswordHasher(utils.PasswordSchemeHMACSHA512)
	require.NoError(t, err)
	blacklist := &memoryBlacklist{revoked: map[string]bool{}}

	h := handlers.NewHandlers(&handlers.Services{
		AuthService:     serviceimpl.NewAuthService(userRepo, hasher, jwtConfig, blacklist),
		TaskService:     serviceimpl.NewTaskService(taskRepo, categoryRepo, userRepo, nil),
		CategoryService: serviceimpl.NewCategoryService(categoryRepo),
		DB:              db,
	})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestIDMiddleware())
	routes.SetupRoutes(app, h, middleware.Protected(jwtConfig, blacklist))
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, &env
}

func decode[T any](t *testing.T, env *envelope) T {
	t.Helper()
	require.NotNil(t, env)
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// registerAndLogin คืน token และ user id
func registerAndLogin(t *testing.T, app *fiber.App, username string) (string, string) {
	t.Helper()
	status, _ := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":        username,
		"email":           username + "@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, status)
	login := decode[map[string]any](t, env)
	return login["token"].(string), login["userId"].(string)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	token, userID := registerAndLogin(t, app, "alice")

	status, env := call(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	profile := decode[map[string]any](t, env)
	assert.Equal(t, userID, profile["id"])
	assert.Equal(t, "alice", profile["username"])

	status, env = call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":        "ALICE",
		"email":           "new@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, utils.ErrCodeConflict, env.Error.Code)

	status, env = call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, utils.ErrCodeUnauthorized, env.Error.Code)

	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidationDetails(t *testing.T) {
	app := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":        "al",
		"email":           "not-an-email",
		"password":        "secret1",
		"confirmPassword": "different",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, utils.ErrCodeValidation, env.Error.Code)

	fields := map[string]bool{}
	for _, d := range env.Error.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["email"])
	assert.True(t, fields["confirmPassword"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, http.MethodGet, "/api/v1/tasks", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, utils.ErrCodeUnauthorized, env.Error.Code)
		})
	}

	other := jwtConfig
	other.Secret = "someone-else"
	issued, err := utils.GenerateToken(other, uuid.New(), "mallory", "m@example.com", time.Now())
	require.NoError(t, err)
	status, _ := call(t, app, http.MethodGet, "/api/v1/tasks", issued.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, err := utils.GenerateToken(jwtConfig, uuid.New(), "mallory", "m@example.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	status, env := call(t, app, http.MethodGet, "/api/v1/tasks", expired.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has expired", env.Error.Message)
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	aliceToken, _ := registerAndLogin(t, app, "alice")
	bobToken, bobID := registerAndLogin(t, app, "bob")
	carolToken, _ := registerAndLogin(t, app, "carol")

	status, env := call(t, app, http.MethodPost, "/api/v1/categories", aliceToken, map[string]string{"name": "Errands"})
	require.Equal(t, http.StatusCreated, status)
	category := decode[map[string]any](t, env)

	status, env = call(t, app, http.MethodPost, "/api/v1/tasks", aliceToken, map[string]any{
		"title":            "Buy milk",
		"priority":         2,
		"dueDate":          "2025-06-01T10:00:00Z",
		"assignedToUserId": bobID,
		"categoryIds":      []string{category["id"].(string)},
	})
	require.Equal(t, http.StatusCreated, status)
	task := decode[map[string]any](t, env)
	taskPath := "/api/v1/tasks/" + task["id"].(string)
	assert.Equal(t, "alice", task["createdByUsername"])
	assert.Equal(t, "bob", task["assignedToUsername"])
	assert.Len(t, task["categories"], 1)

	// assignee เห็นได้, คนอื่นได้ 404
	status, _ = call(t, app, http.MethodGet, taskPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, taskPath, carolToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = call(t, app, http.MethodGet, "/api/v1/tasks/assigned", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	// null ล้างค่า, field ที่ไม่ส่งไม่เปลี่ยน
	status, _ = call(t, app, http.MethodPut, taskPath, aliceToken, map[string]any{"dueDate": nil, "priority": nil})
	require.Equal(t, http.StatusNoContent, status)
	status, env = call(t, app, http.MethodGet, taskPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	task = decode[map[string]any](t, env)
	assert.Nil(t, task["dueDate"])
	assert.Nil(t, task["priority"])
	assert.Equal(t, "Buy milk", task["title"])
	assert.Equal(t, "bob", task["assignedToUsername"])

	status, _ = call(t, app, http.MethodPut, taskPath, aliceToken, map[string]any{"priority": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPatch, taskPath+"/complete", bobToken, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, env = call(t, app, http.MethodGet, "/api/v1/tasks?isCompleted=true", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	// assignee ลบไม่ได้ (403), คนนอกได้ 404
	status, env = call(t, app, http.MethodDelete, taskPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, utils.ErrCodeForbidden, env.Error.Code)
	status, _ = call(t, app, http.MethodDelete, taskPath, carolToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodDelete, taskPath, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, taskPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTaskFilterQueryParsing(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "alice")

	_, env := call(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Home"})
	home := decode[map[string]any](t, env)["id"].(string)
	_, env = call(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Work"})
	work := decode[map[string]any](t, env)["id"].(string)

	for _, body := range []map[string]any{
		{"title": "Home chore", "dueDate": "2025-03-10T23:30:00Z", "categoryIds": []string{home}},
		{"title": "Work report", "dueDate": "2025-03-11T09:00:00Z", "priority": 3, "categoryIds": []string{work}},
		{"title": "No date"},
	} {
		status, _ := call(t, app, http.MethodPost, "/api/v1/tasks", token, body)
		require.Equal(t, http.StatusCreated, status)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"date-only upper bound covers the whole day", "?dueDateTo=2025-03-10", []string{"Home chore"}},
		{"rfc3339 lower bound", "?dueDateFrom=2025-03-11T00:00:00Z", []string{"Work report"}},
		{"priority", "?priority=3", []string{"Work report"}},
		{"comma separated categories", "?categoryIds=" + home + "," + work, []string{"Work report", "Home chore"}},
		{"repeated categories", "?categoryIds=" + home + "&categoryIds=" + work, []string{"Work report", "Home chore"}},
		{"no filter", "", []string{"No date", "Work report", "Home chore"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, http.MethodGet, "/api/v1/tasks"+tt.query, token, nil)
			require.Equal(t, http.StatusOK, status)
			var titles []string
			for _, task := range decode[[]map[string]any](t, env) {
				titles = append(titles, task["title"].(string))
			}
			assert.Equal(t, tt.want, titles)
		})
	}

	invalid := []string{
		"?priority=7",
		"?isCompleted=maybe",
		"?dueDateFrom=yesterday",
		"?categoryIds=not-a-uuid",
		"?dueDateFrom=2025-03-12&dueDateTo=2025-03-01",
	}
	for _, query := range invalid {
		t.Run("invalid "+query, func(t *testing.T) {
			status, env := call(t, app, http.MethodGet, "/api/v1/tasks"+query, token, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, utils.ErrCodeValidation, env.Error.Code)
		})
	}
}

func TestCategoryOfAnotherUserIsNotFoundOverHTTP(t *testing.T) {
	app := newTestApp(t)
	aliceToken, _ := registerAndLogin(t, app, "alice")
	bobToken, _ := registerAndLogin(t, app, "bob")

	_, env := call(t, app, http.MethodPost, "/api/v1/categories", aliceToken, map[string]string{"name": "Home"})
	path := "/api/v1/categories/" + decode[map[string]any](t, env)["id"].(string)

	status, _ := call(t, app, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPut, path, aliceToken, map[string]any{"color": "#00ff00"})
	assert.Equal(t, http.StatusNoContent, status)
	status, env = call(t, app, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "#00ff00", decode[map[string]any](t, env)["color"])
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, false, body["nats"])
}

func TestDeleteAccountWithTasksConflicts(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerAndLogin(t, app, "alice")

	status, _ := call(t, app, http.MethodPost, "/api/v1/tasks", token, map[string]any{"title": "Keep me"})
	require.Equal(t, http.StatusCreated, status)

	status, env := call(t, app, http.MethodDelete, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, utils.ErrCodeConflict, env.Error.Code)

	other, _ := registerAndLogin(t, app, "bob")
	status, _ = call(t, app, http.MethodDelete, "/api/v1/auth/me", other, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/auth/me", other, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
