package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultDatabaseTimeout = 10 * time.Second

type Driver string

const (
	DriverPostgres Driver = "postgres" // Networked bookstore database (default)
	DriverSQLite   Driver = "sqlite"   // Local file; Database is the file path
)

type (
	Config struct {
		Database
		HTTP
		Global
		Refresh
		Auth
		Audit
	}

	Database struct {
		Driver   Driver
		Hostname string
		Port     int
		Name     string
		User     string
		Password string
		Timeout  time.Duration // Upper bound for a single query or unit of work
		Verbose  bool          // Log every SQL statement
	}
	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Refresh struct {
		Enabled  bool
		Schedule string // Cron format or "@every 30s"
	}
	Auth struct {
		CSRFSecret    string
		SecureCookies bool // Leave false for the loopback desk API

		MaxLoginAttempts int           // Failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 5m)
	}
	Audit struct {
		Enabled   bool
		Retention time.Duration // Events older than this are pruned daily; 0 keeps everything
	}
)

// NewConfig reads settings from the ini file at settingsPath (the
// [database] group and friends), then lets environment variables such as
// DATABASE_DRIVER override them. A missing or unreadable file is not an
// error: every key falls back to its default.
func NewConfig(settingsPath string) *Config {
	v := viper.New()
	v.SetConfigType("ini")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.driver", string(DriverPostgres))
	v.SetDefault("database.hostname", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "bookstore")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.timeout", "10s")
	v.SetDefault("database.verbose", false)

	v.SetDefault("http.port", 8188)
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("global.shutdown_timeout_in_seconds", 2)

	v.SetDefault("refresh.enabled", false)
	v.SetDefault("refresh.schedule", "@every 30s")

	v.SetDefault("auth.csrf_secret", "")          // Auto-generated if empty
	v.SetDefault("auth.secure_cookies", false)    // Loopback HTTP
	v.SetDefault("auth.max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth.rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth.lockout_duration", "5m")   // Lockout duration

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.retention", "2160h")

	if settingsPath != "" {
		if _, err := os.Stat(settingsPath); err == nil {
			v.SetConfigFile(settingsPath)
			if err := v.ReadInConfig(); err != nil {
				log.Printf("[config] could not read %s, using defaults: %v", settingsPath, err)
			}
		} else {
			log.Printf("[config] %s not found, using defaults", settingsPath)
		}
	}

	return &Config{
		Database: Database{
			Driver:   Driver(strings.ToLower(v.GetString("database.driver"))),
			Hostname: v.GetString("database.hostname"),
			Port:     v.GetInt("database.port"),
			Name:     v.GetString("database.database"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Timeout:  parseTimeout(v.GetString("database.timeout")),
			Verbose:  v.GetBool("database.verbose"),
		},
		HTTP: HTTP{
			Port: v.GetInt32("http.port"),
			Host: v.GetString("http.host"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("global.shutdown_timeout_in_seconds"),
		},
		Refresh: Refresh{
			Enabled:  v.GetBool("refresh.enabled"),
			Schedule: v.GetString("refresh.schedule"),
		},
		Auth: Auth{
			CSRFSecret:       v.GetString("auth.csrf_secret"),
			SecureCookies:    v.GetBool("auth.secure_cookies"),
			MaxLoginAttempts: v.GetInt("auth.max_login_attempts"),
			RateLimitWindow:  v.GetDuration("auth.rate_limit_window"),
			LockoutDuration:  v.GetDuration("auth.lockout_duration"),
		},
		Audit: Audit{
			Enabled:   v.GetBool("audit.enabled"),
			Retention: v.GetDuration("audit.retention"),
		},
	}
}

// parseTimeout reads a duration such as "10s". A bare number means seconds.
// Anything unparseable or shorter than a millisecond falls back to the
// default, since it would fail every query at once.
func parseTimeout(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		raw = strconv.Itoa(secs) + "s"
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < time.Millisecond {
		log.Printf("[config] invalid database.timeout %q, using %v", raw, defaultDatabaseTimeout)
		return defaultDatabaseTimeout
	}
	return d
}
