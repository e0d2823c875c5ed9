package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/gql"
	rest "github.com/wfstat-cloud/wfstat/api/rest/v1"
	"github.com/wfstat-cloud/wfstat/pkg/env"
)

var e *echo.Echo

// Start launches wfstat's API.
func Start() error {
	e = echo.New()
	e.HideBanner = true
	e.HidePort = true

	// health
	e.GET("/health", Health)

	// metrics
	prometheus.NewPrometheus("wfstat", nil).Use(e)

	// REST
	rest.Bind(e.Group("/v1"))

	// GraphQL
	e.GET("/gql", gql.Handler())
	e.POST("/gql", gql.Handler())

	return e.Start(fmt.Sprintf(":%v", env.Variables().Port))
}

// Shutdown stops the API server.
func Shutdown() error {
	if e == nil {
		return nil
	}
	return e.Close()
}
