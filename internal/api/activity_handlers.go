package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourname/activitytracker/internal"
)

// Timestamps arrive as ISO-8601 local date-times, months as year-month.
const (
	timeLayout  = "2006-01-02T15:04:05"
	monthLayout = "2006-01"
)

func PostRecordSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		loginParam := c.Query("loginTime")
		logoutParam := c.Query("logoutTime")
		if userID == "" || loginParam == "" || logoutParam == "" {
			HandleBadRequest(c, app.Logger(), "Missing parameters: userId, loginTime and logoutTime required")
			return
		}

		login, err := time.Parse(timeLayout, loginParam)
		if err != nil {
			HandleBadRequest(c, app.Logger(), "Invalid loginTime: "+err.Error())
			return
		}
		logout, err := time.Parse(timeLayout, logoutParam)
		if err != nil {
			HandleBadRequest(c, app.Logger(), "Invalid logoutTime: "+err.Error())
			return
		}

		if err := app.Analytics().RecordSession(c.Request.Context(), userID, login, logout); err != nil {
			HandleError(c, app.Logger(), err, "Failed to record session")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"recorded": true}, nil)
	}
}

func GetTotalActivity(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			HandleBadRequest(c, app.Logger(), "Missing userId")
			return
		}

		minutes, err := app.Analytics().TotalActivity(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to compute total activity")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{"total_minutes": minutes}, nil)
	}
}

func GetMonthlyActivity(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		monthParam := c.Query("month")
		if userID == "" || monthParam == "" {
			HandleBadRequest(c, app.Logger(), "Missing parameters: userId and month required")
			return
		}

		month, err := time.Parse(monthLayout, monthParam)
		if err != nil {
			HandleBadRequest(c, app.Logger(), "Invalid month: "+err.Error())
			return
		}

		activity, err := app.Analytics().MonthlyActivity(c.Request.Context(), userID, month)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to compute monthly activity")
			return
		}

		HandleSuccess(c, app.Logger(), activity, nil)
	}
}

func GetInactiveUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		daysParam := c.Query("days")
		if daysParam == "" {
			HandleBadRequest(c, app.Logger(), "Missing days parameter")
			return
		}

		days, err := strconv.Atoi(daysParam)
		if err != nil {
			HandleBadRequest(c, app.Logger(), "Invalid number format for days")
			return
		}
		if days < 0 {
			HandleError(c, app.Logger(), internal.ErrInvalidArgument, "Days param can't be negative")
			return
		}

		inactive, err := app.Analytics().FindInactive(c.Request.Context(), days)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to find inactive users")
			return
		}

		HandleSuccess(c, app.Logger(), inactive, nil)
	}
}
