package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// SessionContextKey is where Session stores the request's *domain.Session.
const SessionContextKey = "session"

// SessionOpener turns a raw token into a session; nil means no session.
type SessionOpener interface {
	Open(token string) *domain.Session
}

// Session decodes the session token once per request. The token is taken from
// an "Authorization: Bearer" header first, then from the named cookie. The
// token is not verified; downstream handlers only use it to pick UI.
func Session(opener SessionOpener, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session := opener.Open(tokenFrom(c, cookieName)); session != nil {
				c.Set(SessionContextKey, session)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session stored by Session, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(SessionContextKey).(*domain.Session)
	return s
}

func tokenFrom(c echo.Context, cookieName string) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
