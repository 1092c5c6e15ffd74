package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	retentions []time.Duration
	deleted    int64
	err        error
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.retentions = append(f.retentions, retention)
	return f.deleted, f.err
}

func TestCleanupAuditEvents(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 3}

	n, err := CleanupAuditEvents(context.Background(), cleaner, 48*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []time.Duration{48 * time.Hour}, cleaner.retentions)
}

func TestCleanupAuditEvents_ZeroRetentionKeepsEverything(t *testing.T) {
	cleaner := &fakeCleaner{}

	n, err := CleanupAuditEvents(context.Background(), cleaner, 0)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, cleaner.retentions)
}

func TestCleanupAuditEvents_Errors(t *testing.T) {
	_, err := CleanupAuditEvents(context.Background(), nil, time.Hour)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = CleanupAuditEvents(context.Background(), &fakeCleaner{err: boom}, time.Hour)
	assert.ErrorIs(t, err, boom)
}

func TestAuditCleanupScheduler_RunsOnStart(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(cleaner, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Len(t, cleaner.retentions, 1)
}

func TestAuditCleanupScheduler_DisabledWithoutRetention(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeCleaner{}, 0)

	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.IsRunning())
}
