package task

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/task"
)

func NonCached(c echo.Context) error {
	rows, err := task.Service(c.Request().Context()).NonCached()
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, rows)
}

func NonDispatched(c echo.Context) error {
	rows, err := task.Service(c.Request().Context()).NonDispatched()
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, rows)
}
