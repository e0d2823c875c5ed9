package run

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/run"
)

func List(c echo.Context) error {
	runs, err := run.Service(c.Request().Context()).List()
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	offset, err := queryInt(c, "offset")
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	if offset > 0 {
		if offset > len(runs) {
			offset = len(runs)
		}
		runs = runs[offset:]
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	return c.JSON(http.StatusOK, runs)
}

func queryInt(c echo.Context, param string) (int, error) {
	v := c.QueryParam(param)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
