package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

type PreferenceHandler struct {
	prefs ports.PreferenceService
}

func NewPreferenceHandler(prefs ports.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// GetTheme handles GET /api/preferences/theme.
//
// @Summary      Current theme mode
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/preferences/theme [get]
func (h *PreferenceHandler) GetTheme(c echo.Context) error {
	session, err := sessionWithIdentity(c)
	if err != nil {
		return err
	}
	mode, err := h.prefs.Theme(c.Request().Context(), session)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, themeResponse{Mode: mode})
}

// PutTheme handles PUT /api/preferences/theme.
//
// @Summary      Set theme mode
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      themeRequest  true  "Theme mode"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/preferences/theme [put]
func (h *PreferenceHandler) PutTheme(c echo.Context) error {
	session, err := sessionWithIdentity(c)
	if err != nil {
		return err
	}
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	mode := domain.ThemeMode(req.Mode)
	if err := h.prefs.SetTheme(c.Request().Context(), session, mode); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, themeResponse{Mode: mode})
}

// ToggleTheme handles POST /api/preferences/theme/toggle.
//
// @Summary      Flip between light and dark
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/preferences/theme/toggle [post]
func (h *PreferenceHandler) ToggleTheme(c echo.Context) error {
	session, err := sessionWithIdentity(c)
	if err != nil {
		return err
	}
	mode, err := h.prefs.ToggleTheme(c.Request().Context(), session)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, themeResponse{Mode: mode})
}
