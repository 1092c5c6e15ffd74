// Package assignments holds the units of work that move a task between
// couriers: claim, release, complete and annotate.
//
// Each method is one transaction opened on its own connection. A task that
// is not in the state the operation needs yields database.ErrPrecondition
// and nothing is written.
package assignments

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

type Repository struct {
	conn *database.Connector
	now  func() time.Time
}

func NewRepository(conn *database.Connector) *Repository {
	return &Repository{conn: conn, now: time.Now}
}

const keyClause = "purchasing_date = ? AND isbn = ? AND customer_id = ?"

func keyArgs(key entities.TaskKey) []any {
	return []any{key.PurchasingDate, key.ISBN, key.CustomerID}
}

func checkKind(key entities.TaskKey) error {
	if !key.Kind.Valid() {
		return fmt.Errorf("%w: unknown task kind %q", database.ErrPrecondition, key.Kind)
	}
	return nil
}

// Select claims an unassigned task for courierID. The link table's primary
// key decides a race: whoever inserts second gets ErrPrecondition.
func (r *Repository) Select(ctx context.Context, key entities.TaskKey, courierID uint) error {
	if err := checkKind(key); err != nil {
		return err
	}
	taskTable, linkTable := key.Kind.Tables()

	return r.conn.Transact(ctx, func(tx *gorm.DB) error {
		var tasks int64
		if err := tx.Table(taskTable).Where(keyClause, keyArgs(key)...).Count(&tasks).Error; err != nil {
			return err
		}
		if tasks != 1 {
			return fmt.Errorf("%w: %s does not exist", database.ErrPrecondition, key)
		}

		link := entities.TaskLink{
			PurchasingDate: key.PurchasingDate,
			ISBN:           key.ISBN,
			CustomerID:     key.CustomerID,
			CourierID:      courierID,
			AssignedAt:     r.now(),
		}
		if err := tx.Table(linkTable).Create(&link).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %s is already assigned", database.ErrPrecondition, key)
			}
			return err
		}
		return nil
	})
}

// Deselect releases a task courierID holds and has not completed.
func (r *Repository) Deselect(ctx context.Context, key entities.TaskKey, courierID uint) error {
	if err := checkKind(key); err != nil {
		return err
	}
	_, linkTable := key.Kind.Tables()

	return r.conn.Transact(ctx, func(tx *gorm.DB) error {
		res := tx.Table(linkTable).
			Where(keyClause, keyArgs(key)...).
			Where("courier_id = ? AND completed_at IS NULL", courierID).
			Delete(&entities.TaskLink{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s is not assigned to courier %d", database.ErrPrecondition, key, courierID)
		}
		return nil
	})
}

// Mark completes a task courierID holds. Completion is terminal, so a second
// mark finds nothing to update.
func (r *Repository) Mark(ctx context.Context, key entities.TaskKey, courierID uint) error {
	if err := checkKind(key); err != nil {
		return err
	}
	_, linkTable := key.Kind.Tables()

	return r.conn.Transact(ctx, func(tx *gorm.DB) error {
		res := tx.Table(linkTable).
			Where(keyClause, keyArgs(key)...).
			Where("courier_id = ? AND completed_at IS NULL", courierID).
			Update("completed_at", r.now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s is not open for courier %d", database.ErrPrecondition, key, courierID)
		}
		return nil
	})
}

// Comment replaces the stored comment of a task courierID holds. The text is
// bound as a parameter and stored as given.
func (r *Repository) Comment(ctx context.Context, key entities.TaskKey, courierID uint, comment string) error {
	if err := checkKind(key); err != nil {
		return err
	}
	taskTable, linkTable := key.Kind.Tables()

	return r.conn.Transact(ctx, func(tx *gorm.DB) error {
		var held int64
		err := tx.Table(linkTable).
			Where(keyClause, keyArgs(key)...).
			Where("courier_id = ? AND completed_at IS NULL", courierID).
			Count(&held).Error
		if err != nil {
			return err
		}
		if held != 1 {
			return fmt.Errorf("%w: %s is not open for courier %d", database.ErrPrecondition, key, courierID)
		}

		return tx.Table(taskTable).
			Where(keyClause, keyArgs(key)...).
			Update("commnt", comment).Error
	})
}
