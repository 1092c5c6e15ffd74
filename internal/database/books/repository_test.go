package books

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/database/dbtest"
	"github.com/mrlokans/bookcourier/internal/entities"
)

func link(t *testing.T, conn *database.Connector, key entities.TaskKey, courierID uint, completed bool) {
	t.Helper()
	l := entities.TaskLink{
		PurchasingDate: key.PurchasingDate,
		ISBN:           key.ISBN,
		CustomerID:     key.CustomerID,
		CourierID:      courierID,
		AssignedAt:     time.Now(),
	}
	if completed {
		now := time.Now()
		l.CompletedAt = &now
	}
	_, table := key.Kind.Tables()
	require.NoError(t, conn.Do(context.Background(), func(db *gorm.DB) error {
		return db.Table(table).Create(&l).Error
	}))
}

func keys(tasks []entities.BookTask) []entities.TaskKey {
	out := make([]entities.TaskKey, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Key())
	}
	return out
}

func TestTaskQuery_Shape(t *testing.T) {
	unassigned, args := taskQuery(false, 0)
	assert.Empty(t, args)
	assert.Contains(t, unassigned, "LEFT JOIN receiving d")
	assert.Contains(t, unassigned, "LEFT JOIN delivery d")
	assert.Contains(t, unassigned, "UNION ALL")
	assert.NotContains(t, unassigned, "commnt")

	assigned, args := taskQuery(true, 7)
	assert.Equal(t, []any{uint(7), uint(7)}, args)
	assert.Contains(t, assigned, "d.completed_at IS NULL")
	assert.Contains(t, assigned, "b.commnt AS comment")
	assert.NotContains(t, assigned, "LEFT JOIN")
}

func TestRepository_QueryUnassigned(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewRepository(conn)

	free := dbtest.SeedReceive(t, conn, "2024-01-02", "222", 5)
	dbtest.SeedDeliver(t, conn, "2024-01-01", "111", 6)
	taken := dbtest.SeedReceive(t, conn, "2024-01-03", "333", 5)
	link(t, conn, taken, 9, false)

	tasks, err := repo.QueryUnassigned(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, entities.TaskKindDeliver, tasks[0].Kind)
	assert.Equal(t, "9 Delivery Road", tasks[0].Address)
	assert.Equal(t, "Title 111", tasks[0].Title)
	assert.Equal(t, free, tasks[1].Key())
	assert.Equal(t, "1 Pickup Lane", tasks[1].Address)
	assert.Equal(t, "Customer", tasks[1].CustomerName)
	assert.Nil(t, tasks[1].Comment)
}

func TestRepository_QueryUnassigned_CompletedStaysHidden(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewRepository(conn)

	done := dbtest.SeedDeliver(t, conn, "2024-01-01", "111", 6)
	link(t, conn, done, 9, true)

	tasks, err := repo.QueryUnassigned(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestRepository_QueryAssigned(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewRepository(conn)

	mine := dbtest.SeedReceive(t, conn, "2024-01-01", "111", 5)
	link(t, conn, mine, 7, false)
	completed := dbtest.SeedDeliver(t, conn, "2024-01-01", "111", 5)
	link(t, conn, completed, 7, true)
	theirs := dbtest.SeedReceive(t, conn, "2024-01-02", "222", 5)
	link(t, conn, theirs, 8, false)
	dbtest.SeedDeliver(t, conn, "2024-01-03", "333", 5)

	tasks, err := repo.QueryAssigned(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []entities.TaskKey{mine}, keys(tasks))
	require.NotNil(t, tasks[0].Comment)
	assert.Equal(t, "", *tasks[0].Comment)
}

func TestRepository_QueryAssigned_ReturnsComment(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewRepository(conn)

	key := dbtest.SeedDeliver(t, conn, "2024-01-01", "111", 5)
	link(t, conn, key, 7, false)
	require.NoError(t, conn.Do(context.Background(), func(db *gorm.DB) error {
		return db.Model(&entities.BookToDeliver{}).
			Where("purchasing_date = ? AND isbn = ? AND customer_id = ?", key.PurchasingDate, key.ISBN, key.CustomerID).
			Update("commnt", "ring twice; don't 'knock'").Error
	}))

	tasks, err := repo.QueryAssigned(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ring twice; don't 'knock'", *tasks[0].Comment)
}

func TestRepository_StableOrdering(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewRepository(conn)

	dbtest.SeedReceive(t, conn, "2024-01-01", "111", 5)
	dbtest.SeedDeliver(t, conn, "2024-01-01", "111", 5)
	dbtest.SeedReceive(t, conn, "2024-01-01", "111", 4)
	dbtest.SeedReceive(t, conn, "2023-12-31", "999", 1)

	first, err := repo.QueryUnassigned(context.Background())
	require.NoError(t, err)
	second, err := repo.QueryUnassigned(context.Background())
	require.NoError(t, err)

	assert.Equal(t, keys(first), keys(second))
	assert.Equal(t, []entities.TaskKey{
		{Kind: entities.TaskKindReceive, PurchasingDate: "2023-12-31", ISBN: "999", CustomerID: 1},
		{Kind: entities.TaskKindReceive, PurchasingDate: "2024-01-01", ISBN: "111", CustomerID: 4},
		{Kind: entities.TaskKindDeliver, PurchasingDate: "2024-01-01", ISBN: "111", CustomerID: 5},
		{Kind: entities.TaskKindReceive, PurchasingDate: "2024-01-01", ISBN: "111", CustomerID: 5},
	}, keys(first))
}

func TestRepository_Unreachable(t *testing.T) {
	repo := NewRepository(dbtest.Unreachable(t))

	free, err := repo.QueryUnassigned(context.Background())
	assert.ErrorIs(t, err, database.ErrConnectivity)
	assert.NotNil(t, free)
	assert.Empty(t, free)

	mine, err := repo.QueryAssigned(context.Background(), 7)
	assert.ErrorIs(t, err, database.ErrConnectivity)
	assert.Empty(t, mine)
}
