package internal

import "errors"

var (
	ErrAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoSessions      = errors.New("no sessions found for user")
	ErrInvalidInterval = errors.New("logout time must be after login time")
	ErrInvalidArgument = errors.New("invalid argument")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
