package api

import (
	"github.com/gin-gonic/gin"
)

func GetUserStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			HandleBadRequest(c, app.Logger(), "Missing userId")
			return
		}

		status, err := app.Status().UserStatus(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to compute user status")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"status": status}, nil)
	}
}

func GetLastSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			HandleBadRequest(c, app.Logger(), "Missing userId")
			return
		}

		date, err := app.Status().LastSessionDate(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch last session date")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"last_session_date": date}, nil)
	}
}
