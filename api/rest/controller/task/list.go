package task

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/service/task"
)

func List(c echo.Context) error {
	req, err := parseListRequest(c)
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	rows, err := task.Service(c.Request().Context()).List(req)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, rows)
}

func parseListRequest(c echo.Context) (req *task.ListRequest, err error) {
	req = &task.ListRequest{
		Status:   c.QueryParam("status"),
		Function: c.QueryParam("function"),
	}

	for param, target := range map[string]*int{
		"runnum":  &req.RunNum,
		"tasknum": &req.TaskNum,
		"task_id": &req.TaskID,
		"limit":   &req.Limit,
	} {
		if v := c.QueryParam(param); v != "" {
			if *target, err = strconv.Atoi(v); err != nil {
				return nil, err
			}
		}
	}

	if extended := c.QueryParam("extended"); extended != "" {
		if req.Extended, err = strconv.ParseBool(extended); err != nil {
			return nil, err
		}
	}

	return
}
