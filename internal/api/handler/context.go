package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/domain"
)

// ctxPrincipal extracts the principal the authentication guard stored on
// the context. Its absence means a route was wired without the guard,
// which is a configuration bug surfaced as a 401 rather than a panic.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || !p.Valid() {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication principal")
	}
	return p, nil
}
