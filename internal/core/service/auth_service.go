package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
	"github.com/taskdesk/task-system/internal/core/token"
)

// AuthService implements signup and signin on top of the user store, the
// token manager and a failed-signin throttle.
type AuthService struct {
	users    ports.UserRepository
	tokens   *token.Manager
	throttle ports.SigninThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens *token.Manager,
	throttle ports.SigninThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, audit: audit, log: log}
}

// Signup creates an account with a bcrypt-hashed password. Role is
// caller-supplied and must be one of the known roles.
func (s *AuthService) Signup(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         parsedRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditSignup, created.ID, "role="+string(created.Role))
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user signed up")
	return created, nil
}

// Signin verifies credentials and issues an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allow(ctx, username)
	if err != nil {
		// A broken throttle must not lock everyone out.
		s.log.Warn().Err(err).Str("username", username).Msg("signin throttle check failed, allowing attempt")
	} else if !allowed {
		s.record(domain.AuditSigninFailed, username, "throttled")
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username, "unknown username")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		s.recordFailure(ctx, username, "inactive account")
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username, "wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("signin throttle reset failed")
	}

	accessToken, err := s.tokens.Issue(domain.Principal{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditSignin, user.ID, "")
	return accessToken, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username, detail string) {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("signin failure not recorded in throttle")
	}
	s.record(domain.AuditSigninFailed, username, detail)
}

func (s *AuthService) record(action, subjectID, detail string) {
	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		Action:    action,
		SubjectID: subjectID,
		Detail:    detail,
		At:        time.Now().UTC(),
	})
}
