package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/wfstat-cloud/wfstat/internal/maintenance"
)

// Migrate applies the versioned schema migration exactly once.
func Migrate(c echo.Context) error {
	svc := maintenance.Service(c.Request().Context())

	err := svc.Migrate()

	switch {
	case errors.Is(err, maintenance.ErrAlreadyMigrated):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return echo.ErrInternalServerError.SetInternal(err)
	}

	version, err := svc.Version()
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, map[string]int{"version": version})
}

// Reindex builds the task hash index.
func Reindex(c echo.Context) error {
	if err := maintenance.Service(c.Request().Context()).Reindex(); err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Analyze refreshes planner statistics.
func Analyze(c echo.Context) error {
	if err := maintenance.Service(c.Request().Context()).Analyze(); err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Vacuum reclaims unused space.
func Vacuum(c echo.Context) error {
	if err := maintenance.Service(c.Request().Context()).Vacuum(); err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.NoContent(http.StatusNoContent)
}
