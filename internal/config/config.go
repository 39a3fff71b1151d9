// Package config loads and validates bcmc-trips configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the CLI and the HTTP service.
// Values are populated by Load from environment variables.
type Config struct {
	// EventsURL is the listing page to fetch. Defaults to https://bcmc.ca/m/events/.
	EventsURL string

	// BaseURL is the origin relative listing links resolve against.
	// Defaults to https://bcmc.ca.
	BaseURL string

	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CacheMaxAge is the max-age sent with successful responses. Defaults to 300s.
	CacheMaxAge time.Duration

	// FetchTimeout bounds a single upstream fetch. Defaults to 30s.
	FetchTimeout time.Duration

	// FetchRate is the number of upstream requests allowed per second,
	// with bursts of up to FetchBurst. A rate of 0 disables the limit.
	FetchRate  float64
	FetchBurst int

	UserAgent string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"].
	CORSOrigins []string

	Twitter  TwitterConfig
	Telegram TelegramConfig
}

// TwitterConfig holds the OAuth1 credentials used by the notify command
type TwitterConfig struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether all four credentials are set
func (t TwitterConfig) Complete() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessTokenSecret != ""
}

// TelegramConfig holds the bot credentials used by notify --channel telegram
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Complete reports whether both the bot token and the chat ID are set
func (t TelegramConfig) Complete() bool {
	return t.BotToken != "" && t.ChatID != ""
}

const (
	DefaultEventsURL   = "https://bcmc.ca/m/events/"
	DefaultBaseURL     = "https://bcmc.ca"
	DefaultUserAgent   = "bcmc-trips/1.0 (github.com/pfrederiksen/bcmc-trips)"
	defaultCacheMaxAge = 300
)

// Load reads an optional .env file from the working directory, then builds a
// Config from the environment. Variables already set in the environment win
// over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
// Returns an error listing every variable whose value could not be parsed.
func FromEnv() (Config, error) {
	cfg := Config{
		EventsURL:   getEnv("BCMC_URL", DefaultEventsURL),
		BaseURL:     getEnv("BCMC_BASE_URL", DefaultBaseURL),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		UserAgent:   getEnv("USER_AGENT", DefaultUserAgent),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		Twitter: TwitterConfig{
			APIKey:            os.Getenv("TWITTER_API_KEY"),
			APISecret:         os.Getenv("TWITTER_API_SECRET"),
			AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
			AccessTokenSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		},
	}

	var invalid []string

	maxAge, err := getEnvInt("CACHE_MAX_AGE", defaultCacheMaxAge)
	if err != nil || maxAge < 0 {
		invalid = append(invalid, "CACHE_MAX_AGE")
	}
	cfg.CacheMaxAge = time.Duration(maxAge) * time.Second

	cfg.FetchTimeout, err = getEnvDuration("FETCH_TIMEOUT", 30*time.Second)
	if err != nil || cfg.FetchTimeout <= 0 {
		invalid = append(invalid, "FETCH_TIMEOUT")
	}

	cfg.FetchRate, err = getEnvFloat("FETCH_RATE", 1)
	if err != nil || cfg.FetchRate < 0 {
		invalid = append(invalid, "FETCH_RATE")
	}

	cfg.FetchBurst, err = getEnvInt("FETCH_BURST", 3)
	if err != nil || cfg.FetchBurst < 1 {
		invalid = append(invalid, "FETCH_BURST")
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		invalid = append(invalid, "PORT")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		invalid = append(invalid, "LOG_LEVEL")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

// getEnvDuration accepts Go durations ("45s", "2m") or a bare number of seconds
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
