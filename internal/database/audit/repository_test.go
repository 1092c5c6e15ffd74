package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcourier/internal/database/dbtest"
	"github.com/mrlokans/bookcourier/internal/entities"
)

func event(courierID uint, n int, at time.Time) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventID:   fmt.Sprintf("evt-%d-%d", courierID, n),
		CourierID: courierID,
		EventType: entities.AuditEventSelect,
		Action:    "book_select",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: at,
	}
}

func TestRepository_LogEventSetsCreatedAt(t *testing.T) {
	repo := NewRepository(dbtest.New(t))
	e := &entities.AuditEvent{EventID: "e1", CourierID: 7, EventType: entities.AuditEventAuth}

	require.NoError(t, repo.LogEvent(context.Background(), e))

	assert.NotZero(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(dbtest.New(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(ctx, event(7, i, base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.LogEvent(ctx, event(8, 0, base)))

	events, total, err := repo.GetEvents(ctx, 7, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-7-2", events[0].EventID)
	assert.Equal(t, "evt-7-1", events[1].EventID)

	_, everyone, err := repo.GetEvents(ctx, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), everyone)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(dbtest.New(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, event(7, 0, now.Add(-48*time.Hour))))
	require.NoError(t, repo.LogEvent(ctx, event(7, 1, now)))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	_, total, err := repo.GetEvents(ctx, 7, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
