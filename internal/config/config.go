// Package config loads application settings from the environment,
// with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv string
	Addr   string
	WebDir string

	// Database
	DBPath string
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv: envString("APP_ENV", "development"),
		Addr:   envString("ADDR", ":8080"),
		WebDir: envString("WEB_DIR", "web"),
		DBPath: envString("DB_PATH", "./data/weighttrack.db"),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
