package config

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	LogLevel     string
	HTTPAddr     string
	Backend      string
	PostgresDSN  string
	UsersFile    string
	SessionsFile string
	CacheSize    int
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:          getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			HTTPAddr:     getEnv("HTTP_ADDR", ":8088"),
			Backend:      getEnv("STORAGE_BACKEND", "memory"),
			PostgresDSN:  getEnv("POSTGRES_DSN", ""),
			UsersFile:    getEnv("USERS_FILE", "data/users.json"),
			SessionsFile: getEnv("SESSIONS_FILE", "data/sessions.json"),
			CacheSize:    getEnvInt("CACHE_SIZE", 1024),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "memory":
	case "file":
		if c.UsersFile == "" || c.SessionsFile == "" {
			return errors.New("file storage requires USERS_FILE and SESSIONS_FILE to be set")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: memory, file, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.CacheSize <= 0 {
		return errors.New("CACHE_SIZE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
