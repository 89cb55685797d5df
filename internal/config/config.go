package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port                string
	StaticDir           string
	SeedFile            string
	TrendingURL         string
	TrendingAPIKey      string
	TrendingTimeoutSecs int
	ReadTimeoutSecs     int
	WriteTimeoutSecs    int
	IdleTimeoutSecs     int
	LimiterEnabled      bool
	LimiterRPS          float64
	LimiterBurst        int
	LogLevel            log.Level
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored;
// variables already set in the environment take precedence over the file.
func LoadFile(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:                getEnv("PORT", "5000"),
		StaticDir:           getEnv("STATIC_DIR", "public"),
		SeedFile:            os.Getenv("SEED_FILE"),
		TrendingURL:         os.Getenv("TRENDING_URL"),
		TrendingAPIKey:      os.Getenv("TRENDING_API_KEY"),
		TrendingTimeoutSecs: getEnvInt("TRENDING_TIMEOUT_SECS", 2),
		ReadTimeoutSecs:     getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:    getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:     getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		LimiterEnabled:      getEnvBool("LIMITER_ENABLED", false),
		LimiterRPS:          getEnvFloat("LIMITER_RPS", 10),
		LimiterBurst:        getEnvInt("LIMITER_BURST", 20),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a number between 0 and 65535")
	}
	if cfg.TrendingTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("TRENDING_TIMEOUT_SECS must be positive")
	}
	if cfg.ReadTimeoutSecs <= 0 || cfg.WriteTimeoutSecs <= 0 || cfg.IdleTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("SERVER_*_TIMEOUT values must be positive")
	}
	if cfg.LimiterEnabled && cfg.LimiterRPS <= 0 {
		return Config{}, fmt.Errorf("LIMITER_RPS must be positive")
	}
	if cfg.LimiterEnabled && cfg.LimiterBurst <= 0 {
		return Config{}, fmt.Errorf("LIMITER_BURST must be positive")
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// TrendingEnabled reports whether an upstream trending service is configured.
func (c Config) TrendingEnabled() bool {
	return strings.TrimSpace(c.TrendingURL) != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
