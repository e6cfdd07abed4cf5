package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/domain"
)

func TestUserHandler_Me(t *testing.T) {
	svc := &stubUserService{
		get: func(_ context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("expected lookup of principal id, got %q", id)
			}
			return &domain.User{ID: "u1", Username: "alice", Role: domain.RoleWorker, IsActive: true}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := doJSON(newEcho(), http.MethodGet, "/api/users/me", "")
	withPrincipal(c, domain.Principal{ID: "u1", Username: "alice", Role: domain.RoleWorker})

	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	decodeEnvelope(t, rec)
}

func TestUserHandler_Me_NoPrincipal(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := doJSON(newEcho(), http.MethodGet, "/api/users/me", "")
	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{
		list: func(context.Context) ([]domain.User, error) {
			return []domain.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := doJSON(newEcho(), http.MethodGet, "/api/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	env := decodeEnvelope(t, rec)
	data, _ := env["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 users, got %v", env["data"])
	}
}

func TestUserHandler_Get_NotFoundPropagates(t *testing.T) {
	svc := &stubUserService{
		get: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(svc)

	c, _ := doJSON(newEcho(), http.MethodGet, "/api/users/u9", "")
	c.SetParamNames("id")
	c.SetParamValues("u9")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_UpdateRole(t *testing.T) {
	svc := &stubUserService{
		updateRole: func(_ context.Context, id, role string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice", Role: domain.Role(role)}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := doJSON(newEcho(), http.MethodPatch, "/api/users/u1/role", `{"role":"ADMIN"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	data, _ := env["data"].(map[string]any)
	if data["role"] != "ADMIN" {
		t.Fatalf("unexpected data: %v", env["data"])
	}
}

func TestUserHandler_UpdateRole_InvalidRole(t *testing.T) {
	svc := &stubUserService{
		updateRole: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called for invalid role")
			return nil, nil
		},
	}
	h := NewUserHandler(svc)

	c, _ := doJSON(newEcho(), http.MethodPatch, "/api/users/u1/role", `{"role":"INVALID_ROLE"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	err := h.UpdateRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid role, got %v", err)
	}
}
