package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

// MapError translates known domain errors into HTTP errors. It returns nil for
// anything it does not recognise.
func MapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, "user already exists")
	case errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrNoSession):
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	case errors.Is(err, domain.ErrInvalidSignal), errors.Is(err, domain.ErrInvalidTheme):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrBackendUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "portal backend unavailable")
	}
	return nil
}

// fail returns the mapped HTTP error or err unchanged.
func fail(err error) error {
	if he := MapError(err); he != nil {
		return he
	}
	return err
}
