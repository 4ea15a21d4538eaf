package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Telegram
	BotToken        string
	AuthorizedUsers []int64

	// Database
	DatabaseURL string

	// Status server
	Port string

	// Locale
	Timezone string

	// Persistence retry
	DBMaxAttempts  int
	DBRetryBackoff time.Duration

	// Session expiry; zero disables eviction
	SessionTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		BotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		AuthorizedUsers: parseUserIDs(getEnv("AUTHORIZED_USERS", "")),

		DatabaseURL: databaseURL(),

		Port:     getEnv("PORT", "5000"),
		Timezone: getEnv("TZ", "America/Sao_Paulo"),

		DBMaxAttempts:  getEnvInt("DB_MAX_ATTEMPTS", 3),
		DBRetryBackoff: getEnvDuration("DB_RETRY_BACKOFF", 500*time.Millisecond),

		SessionTTL: getEnvDuration("SESSION_TTL", 0),
	}

	return cfg
}

// databaseURL prefers DATABASE_URL and falls back to assembling one from
// the individual PG* variables.
func databaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	host := os.Getenv("PGHOST")
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("PGUSER"), os.Getenv("PGPASSWORD")),
		Host:     host + ":" + getEnv("PGPORT", "5432"),
		Path:     "/" + os.Getenv("PGDATABASE"),
		RawQuery: "sslmode=require",
	}
	return u.String()
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		errors = append(errors, "database configuration is required (DATABASE_URL or PG* variables)")
	}
	if len(c.AuthorizedUsers) == 0 {
		errors = append(errors, "AUTHORIZED_USERS must list at least one user id")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.DBMaxAttempts < 1 {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_ATTEMPTS %d: must be at least 1", c.DBMaxAttempts))
	} else if c.DBMaxAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_ATTEMPTS %d: must be at most 10", c.DBMaxAttempts))
	}
	if c.DBRetryBackoff < 0 {
		errors = append(errors, fmt.Sprintf("invalid DB_RETRY_BACKOFF %v: must not be negative", c.DBRetryBackoff))
	}
	if c.SessionTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid SESSION_TTL %v: must not be negative", c.SessionTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Authorized reports whether a Telegram user id is on the allow-list.
func (c *Config) Authorized(userID int64) bool {
	for _, id := range c.AuthorizedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Location resolves the configured timezone; validation guarantees it
// loads, but fall back to UTC rather than panic.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseUserIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
