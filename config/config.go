// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the store.
type Config struct {
	Env       string
	DataDir   string
	LogLevel  string
	LogFormat string
	DBDebug   bool
	NoColor   bool
}

// Load reads .env (if present) from the working directory, then the process
// environment. Variables already set in the environment win over .env values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() Config {
	_, noColor := os.LookupEnv("NO_COLOR")
	return Config{
		Env:       getEnv("TODO_ENV", "prod"),
		DataDir:   getEnv("TODO_DATA_DIR", defaultDataDir()),
		LogLevel:  getEnv("TODO_LOG_LEVEL", "warn"),
		LogFormat: getEnv("TODO_LOG_FORMAT", "text"),
		DBDebug:   getEnvBool("TODO_DB_DEBUG", false),
		NoColor:   noColor,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".todo"
	}
	return filepath.Join(home, ".todo")
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
