package api

import (
	"github.com/gin-gonic/gin"
)

func PostRegister(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		userName := c.Query("userName")
		if userID == "" || userName == "" {
			HandleBadRequest(c, app.Logger(), "Missing parameters: userId and userName required")
			return
		}

		if err := app.Analytics().RegisterUser(c.Request.Context(), userID, userName); err != nil {
			HandleError(c, app.Logger(), err, "Failed to register user")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"registered": true}, nil)
	}
}
