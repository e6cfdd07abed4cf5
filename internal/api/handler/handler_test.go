package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// Shared fixtures for the handler tests: an Echo instance with the
// request validator installed, plus stub services.

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func doJSON(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPrincipal(c echo.Context, p domain.Principal) echo.Context {
	c.Set("principal", p)
	return c
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	for _, key := range []string{"statusCode", "message", "data", "timestamp"} {
		if _, ok := env[key]; !ok {
			t.Fatalf("envelope missing %q: %s", key, rec.Body.String())
		}
	}
	return env
}

type stubAuthService struct {
	signup func(ctx context.Context, username, password, role string) (*domain.User, error)
	signin func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.signup(ctx, username, password, role)
}

func (s *stubAuthService) Signin(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.signin(ctx, username, password)
}

type stubUserService struct {
	get        func(ctx context.Context, id string) (*domain.User, error)
	list       func(ctx context.Context) ([]domain.User, error)
	updateRole func(ctx context.Context, id, role string) (*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.get(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx)
}

func (s *stubUserService) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	return s.updateRole(ctx, id, role)
}

type stubTaskService struct {
	create func(ctx context.Context, title, description, createdBy string) (*domain.Task, error)
	list   func(ctx context.Context, p domain.Principal) ([]domain.Task, error)
	assign func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	remove func(ctx context.Context, taskID string) error
}

func (s *stubTaskService) Create(ctx context.Context, title, description, createdBy string) (*domain.Task, error) {
	return s.create(ctx, title, description, createdBy)
}

func (s *stubTaskService) List(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	return s.list(ctx, p)
}

func (s *stubTaskService) Assign(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return s.assign(ctx, taskID, userID)
}

func (s *stubTaskService) Delete(ctx context.Context, taskID string) error {
	return s.remove(ctx, taskID)
}
