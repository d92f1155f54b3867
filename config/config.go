// Package config resolves runtime defaults from the environment. An
// optional .env file in the working directory is loaded first; CLI
// flags take precedence over everything resolved here.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Environment variables recognized as flag defaults.
const (
	EnvLogLevel  = "TTT_LOG_LEVEL"
	EnvEloFile   = "TTT_ELO_FILE"
	EnvDepth     = "TTT_DEPTH"
	EnvTimeoutMS = "TTT_TIMEOUT_MS"
	EnvGames     = "TTT_GAMES"
)

// Config carries the environment-derived defaults for the CLI.
type Config struct {
	LogLevel string
	EloFile  string
	Depth    int // 0 picks the size-based default
	Timeout  time.Duration
	Games    int
}

// Load reads an optional .env file and resolves all defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	return Config{
		LogLevel: GetEnv(EnvLogLevel, "info"),
		EloFile:  GetEnv(EnvEloFile, "ratings.json"),
		Depth:    GetEnvAsInt(EnvDepth, 0),
		Timeout:  time.Duration(GetEnvAsInt(EnvTimeoutMS, 0)) * time.Millisecond,
		Games:    GetEnvAsInt(EnvGames, 1),
	}
}

// GetEnv returns the value of key, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// GetEnvAsInt returns key parsed as an int, or fallback when unset or
// not a number.
func GetEnvAsInt(key string, fallback int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().
			Str("key", key).
			Str("value", valueStr).
			Int("fallback", fallback).
			Msg("invalid integer in environment")
		return fallback
	}
	return value
}
