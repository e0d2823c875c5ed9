package task

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/task"
)

func History(c echo.Context) error {
	tasknum, err := strconv.Atoi(c.Param("tasknum"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	rows, err := task.Service(c.Request().Context()).History(tasknum)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, rows)
}
