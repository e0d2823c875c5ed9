package run

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/wfstat-cloud/wfstat/api/rest/service/run"
)

func Get(c echo.Context) error {
	runnum, err := strconv.Atoi(c.Param("runnum"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	detail, err := run.Service(c.Request().Context()).Get(runnum)

	switch {
	case errors.Is(err, run.ErrNotFound):
		return echo.ErrNotFound
	case err != nil:
		return echo.ErrInternalServerError.SetInternal(err)
	default:
		return c.JSON(http.StatusOK, detail)
	}
}
