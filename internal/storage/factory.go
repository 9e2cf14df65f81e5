package storage

import (
	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/config"
)

func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.Backend {
	case "postgres":
		return NewPostgresStorage(cfg.PostgresDSN, logger)
	case "file":
		return NewFileStorage(cfg.UsersFile, cfg.SessionsFile, logger)
	default:
		return NewMemoryStorage(logger), nil
	}
}
