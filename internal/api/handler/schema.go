package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response shape for every endpoint: successes
// carry the payload in data, errors carry data: null.
type envelope struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Data       any       `json:"data"`
	Timestamp  time.Time `json:"timestamp"`
}

// respond renders a success envelope.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	})
}

// --- Request / Response types ---

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN WORKER SUPERADMIN"`
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN WORKER SUPERADMIN"`
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type assignTaskRequest struct {
	UserID string `json:"userId" validate:"required,len=24,hexadecimal"`
}
