package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// AuthHandler handles signup and signin.
type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  envelope{data=domain.User}
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "user created", user)
}

// Signin authenticates a user and returns an access token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  envelope{data=signinResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      429   {object}  envelope
// @Router       /api/auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, _, err := h.authService.Signin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SigninAttemptsTotal.WithLabelValues(signinResult(err)).Inc()
		return err
	}

	metrics.SigninAttemptsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "signin successful", signinResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}

func signinResult(err error) string {
	if errors.Is(err, domain.ErrTooManyAttempts) {
		return "throttled"
	}
	return "invalid_credentials"
}
