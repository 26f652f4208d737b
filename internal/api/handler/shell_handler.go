package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/api/metrics"
	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// ShellHandler serves the composed page chrome.
type ShellHandler struct {
	shell ports.ShellService
}

func NewShellHandler(shell ports.ShellService) *ShellHandler {
	return &ShellHandler{shell: shell}
}

// Page handles GET on every client route and on unknown paths. A gated or
// unknown path answers 302; everything else answers the shell as JSON.
//
// @Summary      Compose the page at the request path
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Shell
// @Success      302  "Redirect to /login or /"
// @Router       /dashboard [get]
func (h *ShellHandler) Page(c echo.Context) error {
	shell := h.shell.Compose(c.Request().Context(), SessionFrom(c), c.Request().URL.Path)
	record(shell)
	if shell.Redirect != "" {
		return c.Redirect(http.StatusFound, shell.Redirect)
	}
	return c.JSON(http.StatusOK, shell)
}

// Shell handles GET /api/shell: composes an arbitrary path and reports any
// redirect in the body instead of following it.
//
// @Summary      Compose the shell for a client path
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        path  query     string  false  "Client path (default /)"
// @Success      200   {object}  domain.Shell
// @Router       /api/shell [get]
func (h *ShellHandler) Shell(c echo.Context) error {
	shell := h.shell.Compose(c.Request().Context(), SessionFrom(c), c.QueryParam("path"))
	record(shell)
	return c.JSON(http.StatusOK, shell)
}

// Session handles GET /api/session: the claims view of the caller's token.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *ShellHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(SessionFrom(c), false))
}

// Routes handles GET /api/routes: the client route table.
//
// @Summary      Client route table
// @Tags         pages
// @Produce      json
// @Success      200  {array}  domain.Route
// @Router       /api/routes [get]
func (h *ShellHandler) Routes(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Routes)
}

func record(shell domain.Shell) {
	if shell.Redirect != "" {
		metrics.GateRedirectsTotal.WithLabelValues(shell.Redirect).Inc()
		return
	}
	sidebar := "none"
	if shell.Chrome != nil && shell.Chrome.Sidebar != nil {
		sidebar = string(shell.Chrome.Sidebar.Variant)
	}
	metrics.ShellCompositionsTotal.WithLabelValues(sidebar).Inc()
	if shell.Dashboard != nil {
		metrics.DashboardViewsTotal.WithLabelValues(string(shell.Dashboard.View), string(shell.Dashboard.RoleSource)).Inc()
	}
}
