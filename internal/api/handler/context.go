package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/api/middleware"
	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// SessionFrom returns the session decoded by middleware.Session, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	return middleware.CurrentSession(c)
}

// sessionWithIdentity fast-fails with 401 before any service call when the
// request carries no session or the session names nobody.
func sessionWithIdentity(c echo.Context) (*domain.Session, error) {
	session := SessionFrom(c)
	if !session.Active() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	if session.DisplayName() == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session carries no identity")
	}
	return session, nil
}
