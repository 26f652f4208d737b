package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// CookieConfig describes the cookie the session token is kept in.
type CookieConfig struct {
	Name   string
	Secure bool
}

type SessionHandler struct {
	sessions ports.SessionService
	cookie   CookieConfig
}

func NewSessionHandler(sessions ports.SessionService, cookie CookieConfig) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookie: cookie}
}

// Login exchanges credentials for a session.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(err)
	}
	h.setCookie(c, session.Token)
	return c.JSON(http.StatusOK, toSessionResponse(session, true))
}

// Register creates an account and opens its first session.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return fail(err)
	}
	h.setCookie(c, session.Token)
	return c.JSON(http.StatusCreated, toSessionResponse(session, true))
}

// Adopt stores a token the client already holds.
//
// @Summary      Adopt an existing token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      adoptRequest  true  "Session token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /session [post]
func (h *SessionHandler) Adopt(c echo.Context) error {
	var req adoptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session := h.sessions.Open(req.Token)
	if session == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "token is required")
	}
	h.setCookie(c, session.Token)
	return c.JSON(http.StatusOK, toSessionResponse(session, false))
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         session
// @Success      204
// @Router       /session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.clearCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// LogoutPage handles GET /logout from the account menu.
func (h *SessionHandler) LogoutPage(c echo.Context) error {
	h.clearCookie(c)
	return c.Redirect(http.StatusFound, domain.PathLogin)
}

func (h *SessionHandler) setCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *SessionHandler) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
