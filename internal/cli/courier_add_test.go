package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/database/couriers"
	"github.com/mrlokans/bookcourier/internal/database/dbtest"
	"github.com/mrlokans/bookcourier/internal/desk"
)

func TestCourierAdd_StoresHashThatLogsIn(t *testing.T) {
	conn := dbtest.New(t)
	cmd := &CourierAddCommand{
		CourierID: "7",
		Name:      "Olga",
		prompt:    desk.StaticCredentials{CourierID: "7", PasswordHash: auth.HashPassword("7", "secret")},
	}

	require.NoError(t, cmd.run(context.Background(), conn))

	svc := auth.NewService(couriers.NewRepository(conn))
	id, err := svc.Login(context.Background(), "7", auth.HashPassword("7", "secret"))
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestCourierAdd_RejectsDuplicate(t *testing.T) {
	conn := dbtest.New(t)
	dbtest.SeedCourier(t, conn, 7, "hash")
	cmd := &CourierAddCommand{
		CourierID: "7",
		prompt:    desk.StaticCredentials{CourierID: "7", PasswordHash: "other"},
	}

	err := cmd.run(context.Background(), conn)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCourierAdd_CancelledPrompt(t *testing.T) {
	cmd := &CourierAddCommand{CourierID: "7", prompt: desk.CancelledCredentials{}}

	err := cmd.run(context.Background(), dbtest.New(t))

	assert.ErrorIs(t, err, auth.ErrPasswordRequired)
}

func TestCourierAdd_ParseFlags(t *testing.T) {
	cmd := NewCourierAddCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-name", "x"}))

	cmd = NewCourierAddCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-id", "seven"}))

	cmd = NewCourierAddCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-id", "7", "-db", "/tmp/demo.db"}))
	dbCfg := cmd.databaseConfig()
	assert.Equal(t, "sqlite", string(dbCfg.Driver))
	assert.Equal(t, "/tmp/demo.db", dbCfg.Name)
}

func TestHashPassword_PrintsHash(t *testing.T) {
	var out bytes.Buffer
	cmd := &HashPasswordCommand{
		CourierID: "7",
		prompt:    desk.StaticCredentials{CourierID: "7", PasswordHash: "abc123"},
		out:       &out,
	}

	require.NoError(t, cmd.Run())

	assert.Equal(t, "abc123", strings.TrimSpace(out.String()))
}
