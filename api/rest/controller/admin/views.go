package admin

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/internal/views"
	"github.com/wfstat-cloud/wfstat/pkg/db"
)

// CreateViews installs the reporting views. With ?replace=true any
// existing definitions are dropped first; without it a duplicate view
// is a conflict the operator must resolve.
func CreateViews(c echo.Context) error {
	conn := db.Connection()

	if replace, _ := strconv.ParseBool(c.QueryParam("replace")); replace {
		if err := views.Drop(conn); err != nil {
			return echo.ErrInternalServerError.SetInternal(err)
		}
	}

	if err := views.Create(conn); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string][]string{"created": views.Names})
}

// DropViews removes the reporting views.
func DropViews(c echo.Context) error {
	if err := views.Drop(db.Connection()); err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CheckViews reports which views are missing from the schema.
func CheckViews(c echo.Context) error {
	missing, err := views.Missing(db.Connection())
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, map[string][]string{"missing": missing})
}
