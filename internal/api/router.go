package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yourname/activitytracker/internal/metrics"
)

func RegisterRoutes(r *gin.Engine, app App) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/register", PostRegister(app))
	r.POST("/recordSession", PostRecordSession(app))
	r.GET("/totalActivity", GetTotalActivity(app))
	r.GET("/monthlyActivity", GetMonthlyActivity(app))
	r.GET("/inactiveUsers", GetInactiveUsers(app))
	r.GET("/status", GetUserStatus(app))
	r.GET("/lastSession", GetLastSession(app))
}
