package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

func newGateContext(session *domain.Session) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if session != nil {
		c.Set(SessionContextKey, session)
	}
	return c, rec, e
}

func TestRequireSession_RedirectsAnonymous(t *testing.T) {
	c, rec, _ := newGateContext(nil)

	handler := RequireSession("/login")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSession_AllowsActiveSession(t *testing.T) {
	c, rec, _ := newGateContext(&domain.Session{Token: "t"})

	called := false
	handler := RequireSession("/login")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got called=%v code=%d", called, rec.Code)
	}
}

func TestRequireSessionAPI_Unauthorized(t *testing.T) {
	c, rec, e := newGateContext(nil)

	handler := RequireSessionAPI()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
