package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// AuthService implements signup and signin.
type AuthService interface {
	Signup(ctx context.Context, username, password, role string) (*domain.User, error)
	Signin(ctx context.Context, username, password string) (string, *domain.User, error)
}

// SigninThrottle bounds failed signin attempts per username within a
// rolling window.
type SigninThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
