package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/api/metrics"
)

// RequireSession redirects callers without an active session to loginPath.
// It only steers navigation; the portal backend still authorizes every data
// request on its own.
func RequireSession(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).Active() {
				metrics.GateRedirectsTotal.WithLabelValues(loginPath).Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}

// RequireSessionAPI answers 401 instead of redirecting, for JSON endpoints.
func RequireSessionAPI() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).Active() {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			return next(c)
		}
	}
}
