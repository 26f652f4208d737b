package handler

import (
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/api/middleware"
	"github.com/ideaforge/portal-shell/internal/core/domain"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target string, body io.Reader, session *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(middleware.SessionContextKey, session)
	}
	return c, rec
}

// serve runs h and renders a returned error the way the router would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func activeSession(username string, roles ...string) *domain.Session {
	return &domain.Session{Token: "tok-" + username, Claims: domain.Claims{Subject: username, Roles: roles}}
}
