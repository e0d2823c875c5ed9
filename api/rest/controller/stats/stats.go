package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/stats"
)

// Get returns the run aggregates and function/status matrix.
func Get(c echo.Context) error {
	resp, err := stats.New(c.Request().Context()).Get()
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, resp)
}
