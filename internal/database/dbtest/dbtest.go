// Package dbtest builds throwaway sqlite bookstores for tests.
//
//	conn := dbtest.New(t)
//	dbtest.SeedCourier(t, conn, 7, "hash")
//	dbtest.SeedReceive(t, conn, "2024-01-01", "111", 5)
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

// New returns a connector to a migrated sqlite file inside t.TempDir().
func New(t *testing.T) *database.Connector {
	t.Helper()

	conn, err := database.NewConnector(config.Database{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "bookstore.db"),
	})
	require.NoError(t, err)
	conn.Silence()

	require.NoError(t, conn.Migrate(context.Background()))
	return conn
}

// Unreachable returns a connector whose database can never be opened.
func Unreachable(t *testing.T) *database.Connector {
	t.Helper()

	conn, err := database.NewConnector(config.Database{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "missing", "dir", "bookstore.db"),
	})
	require.NoError(t, err)
	return conn.Silence()
}

func exec(t *testing.T, conn *database.Connector, fn func(db *gorm.DB) error) {
	t.Helper()
	require.NoError(t, conn.Do(context.Background(), fn))
}

// SeedCourier inserts a courier with the given stored password hash.
func SeedCourier(t *testing.T, conn *database.Connector, id uint, passwordHash string) {
	t.Helper()
	exec(t, conn, func(db *gorm.DB) error {
		return db.Create(&entities.Courier{ID: id, Name: "Courier", PasswordHash: passwordHash}).Error
	})
}

func seedReference(db *gorm.DB, isbn string, customerID uint) error {
	book := entities.Book{ISBN: isbn, Title: "Title " + isbn, Author: "Author"}
	if err := db.Where(entities.Book{ISBN: isbn}).FirstOrCreate(&book).Error; err != nil {
		return err
	}
	customer := entities.Customer{ID: customerID, Name: "Customer", Phone: "+1 555 0100"}
	return db.Where(entities.Customer{ID: customerID}).FirstOrCreate(&customer).Error
}

// SeedReceive inserts a book awaiting pickup together with its book and
// customer reference rows.
func SeedReceive(t *testing.T, conn *database.Connector, date, isbn string, customerID uint) entities.TaskKey {
	t.Helper()
	exec(t, conn, func(db *gorm.DB) error {
		if err := seedReference(db, isbn, customerID); err != nil {
			return err
		}
		return db.Create(&entities.BookToReceive{
			PurchasingDate: date,
			ISBN:           isbn,
			CustomerID:     customerID,
			Address:        "1 Pickup Lane",
		}).Error
	})
	return entities.TaskKey{Kind: entities.TaskKindReceive, PurchasingDate: date, ISBN: isbn, CustomerID: customerID}
}

// SeedDeliver inserts a book awaiting delivery with its reference rows.
func SeedDeliver(t *testing.T, conn *database.Connector, date, isbn string, customerID uint) entities.TaskKey {
	t.Helper()
	exec(t, conn, func(db *gorm.DB) error {
		if err := seedReference(db, isbn, customerID); err != nil {
			return err
		}
		return db.Create(&entities.BookToDeliver{
			PurchasingDate: date,
			ISBN:           isbn,
			CustomerID:     customerID,
			AddressTo:      "9 Delivery Road",
		}).Error
	})
	return entities.TaskKey{Kind: entities.TaskKindDeliver, PurchasingDate: date, ISBN: isbn, CustomerID: customerID}
}
