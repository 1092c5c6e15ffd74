package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookcourier/internal/config"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
		want string
	}{
		{
			name: "defaults without credentials",
			cfg:  config.Database{Hostname: "localhost", Port: 5432, Name: "bookstore"},
			want: "sslmode=disable host=localhost port=5432 dbname=bookstore connect_timeout=10",
		},
		{
			name: "credentials with spaces are quoted",
			cfg:  config.Database{Hostname: "db", Name: "bookstore", User: "olya", Password: "it's secret"},
			want: `sslmode=disable host=db dbname=bookstore user=olya password='it\'s secret' connect_timeout=10`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgresDSN(tt.cfg, 10*time.Second))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "bookstore.db?_busy_timeout=5000&_txlock=immediate", sqliteDSN(""))
	assert.Equal(t, "/tmp/x.db?_busy_timeout=5000&_txlock=immediate", sqliteDSN("/tmp/x.db"))
	assert.Equal(t, "file:x.db?mode=ro", sqliteDSN("file:x.db?mode=ro"))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
}
