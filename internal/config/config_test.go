package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig_DefaultsWhenFileMissing(t *testing.T) {
	cfg := NewConfig(filepath.Join(t.TempDir(), "nope.ini"))

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Hostname)
	assert.Equal(t, "bookstore", cfg.Database.Name)
	assert.Equal(t, "", cfg.Database.User)
	assert.Equal(t, "", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.False(t, cfg.Refresh.Enabled)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 90*24*time.Hour, cfg.Audit.Retention)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
}

func TestNewConfig_ReadsDatabaseGroup(t *testing.T) {
	path := writeSettings(t, `[database]
driver = sqlite
hostname = db.internal
database = /var/lib/bookstore.db
user = courier
password = secret
`)

	cfg := NewConfig(path)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Hostname)
	assert.Equal(t, "/var/lib/bookstore.db", cfg.Database.Name)
	assert.Equal(t, "courier", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestNewConfig_PartialFileFallsBack(t *testing.T) {
	path := writeSettings(t, `[database]
user = olya
`)

	cfg := NewConfig(path)

	assert.Equal(t, "olya", cfg.Database.User)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Hostname)
	assert.Equal(t, "bookstore", cfg.Database.Name)
}

func TestNewConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeSettings(t, `[database]
hostname = from-file
`)
	t.Setenv("DATABASE_HOSTNAME", "from-env")
	t.Setenv("REFRESH_ENABLED", "true")

	cfg := NewConfig(path)

	assert.Equal(t, "from-env", cfg.Database.Hostname)
	assert.True(t, cfg.Refresh.Enabled)
}

func TestNewConfig_DriverIsCaseInsensitive(t *testing.T) {
	path := writeSettings(t, `[database]
driver = SQLite
`)

	cfg := NewConfig(path)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
}

func TestNewConfig_DatabaseTimeout(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"with unit", "3s", 3 * time.Second},
		{"bare seconds", "10", 10 * time.Second},
		{"milliseconds", "250ms", 250 * time.Millisecond},
		{"too short", "10ns", 10 * time.Second},
		{"garbage", "soon", 10 * time.Second},
		{"negative", "-5", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, "[database]\ntimeout = "+tt.raw+"\n")

			cfg := NewConfig(path)

			assert.Equal(t, tt.want, cfg.Database.Timeout)
		})
	}
}
