package task

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/task"
)

const defaultRecentLimit = 50

func Recent(c echo.Context) error {
	limit := defaultRecentLimit

	if v := c.QueryParam("limit"); v != "" {
		var err error
		if limit, err = strconv.Atoi(v); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}
	}

	rows, err := task.Service(c.Request().Context()).Recent(limit)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, rows)
}
