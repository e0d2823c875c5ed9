package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/wfstat-cloud/wfstat/api/rest/controller/admin"
	"github.com/wfstat-cloud/wfstat/api/rest/controller/run"
	"github.com/wfstat-cloud/wfstat/api/rest/controller/stats"
	"github.com/wfstat-cloud/wfstat/api/rest/controller/task"
)

// Bind the REST endpoints to the versioned endpoint group.
func Bind(group *echo.Group) {
	// runs
	group.GET("/runs", run.List)
	group.GET("/runs/:runnum", run.Get)

	// tasks
	group.GET("/tasks", task.List)
	group.GET("/tasks/noncached", task.NonCached)
	group.GET("/tasks/nondispatched", task.NonDispatched)
	group.GET("/tasks/:tasknum/history", task.History)
	group.GET("/status/recent", task.Recent)

	// stats
	group.GET("/stats", stats.Get)

	// admin
	group.POST("/admin/views", admin.CreateViews)
	group.GET("/admin/views", admin.CheckViews)
	group.DELETE("/admin/views", admin.DropViews)
	group.POST("/admin/migrate", admin.Migrate)
	group.POST("/admin/reindex", admin.Reindex)
	group.POST("/admin/analyze", admin.Analyze)
	group.POST("/admin/vacuum", admin.Vacuum)
}
