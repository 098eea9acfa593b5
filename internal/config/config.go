// Package config provides configuration management for the riskreport
// command. Values are read from a .env file (when present) and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not override them.
const (
	DefaultConfidence   = 0.05
	DefaultLookbackDays = 252 // 1 year of trading days
	DefaultHistoryDB    = "data/history.db"
)

// Config holds riskreport configuration.
type Config struct {
	LogLevel      string
	Pretty        bool
	Confidence    float64   // left-tail probability mass for VaR/ES/CDaR
	ReturnsCSV    string    // CSV return source; takes precedence when set
	HistoryDBPath string    // SQLite history database source
	Symbols       []string  // symbols to load from the history database
	LookbackDays  int       // price history window for the database source
	Weights       []float64 // portfolio weights; equal-weight when empty
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("RISK_LOG_LEVEL", "info"),
		Pretty:        getEnvBool("RISK_LOG_PRETTY", true),
		ReturnsCSV:    os.Getenv("RISK_RETURNS_CSV"),
		HistoryDBPath: getEnv("RISK_HISTORY_DB", DefaultHistoryDB),
	}

	confidence, err := getEnvFloat("RISK_CONFIDENCE", DefaultConfidence)
	if err != nil {
		return nil, fmt.Errorf("invalid RISK_CONFIDENCE: %w", err)
	}
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("RISK_CONFIDENCE must be within [0, 1], got %v", confidence)
	}
	cfg.Confidence = confidence

	lookback, err := getEnvInt("RISK_LOOKBACK_DAYS", DefaultLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("invalid RISK_LOOKBACK_DAYS: %w", err)
	}
	cfg.LookbackDays = lookback

	if raw := os.Getenv("RISK_SYMBOLS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}

	if raw := os.Getenv("RISK_WEIGHTS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid RISK_WEIGHTS entry %q: %w", s, err)
			}
			cfg.Weights = append(cfg.Weights, w)
		}
	}

	if cfg.ReturnsCSV == "" && len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("no return source configured: set RISK_RETURNS_CSV or RISK_SYMBOLS")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
