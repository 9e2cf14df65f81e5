package api

import (
	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/service"
)

type App interface {
	Logger() internal.Logger
	Analytics() *service.Analytics
	Status() *service.Status
}
