package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/response"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, internal.ErrAlreadyExists):
		return 409
	case errors.Is(err, internal.ErrUserNotFound), errors.Is(err, internal.ErrNoSessions):
		return 404
	case errors.Is(err, internal.ErrInvalidInterval), errors.Is(err, internal.ErrInvalidArgument):
		return 400
	default:
		return 500
	}
}

func HandleError(c *gin.Context, logger internal.Logger, err error, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	status := statusFor(err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 409:
		resp = response.Conflict(msg + ": " + err.Error())
	default:
		resp = response.InternalError(msg + ": " + err.Error())
	}
	c.JSON(status, resp)
}

func HandleBadRequest(c *gin.Context, logger internal.Logger, msg string) {
	requestID := c.GetString("request_id")
	logger.Warnf("[request_id=%s] %s", requestID, msg)
	c.JSON(400, response.BadRequest(msg))
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}
