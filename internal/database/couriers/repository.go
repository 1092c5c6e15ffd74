// Package couriers provides database operations for courier accounts.
//
// # Usage
//
//	repo := couriers.NewRepository(conn)
//	n, err := repo.CountByCredentials(ctx, 7, hash)
package couriers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

var (
	ErrCourierExists   = errors.New("courier already exists")
	ErrCourierNotFound = errors.New("courier not found")
)

// Repository handles courier database operations.
type Repository struct {
	conn *database.Connector
}

// NewRepository creates a new couriers repository.
func NewRepository(conn *database.Connector) *Repository {
	return &Repository{conn: conn}
}

// CountByCredentials counts couriers matching both id and stored hash.
// Exactly one means the credentials are valid.
func (r *Repository) CountByCredentials(ctx context.Context, courierID uint, passwordHash string) (int64, error) {
	var n int64
	err := r.conn.Do(ctx, func(db *gorm.DB) error {
		return db.Model(&entities.Courier{}).
			Where("courier_id = ? AND password_hash = ?", courierID, passwordHash).
			Count(&n).Error
	})
	return n, err
}

// CreateCourier inserts a new courier account.
func (r *Repository) CreateCourier(ctx context.Context, courier *entities.Courier) error {
	return r.conn.Do(ctx, func(db *gorm.DB) error {
		if err := db.Create(courier).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %d", ErrCourierExists, courier.ID)
			}
			return fmt.Errorf("failed to create courier: %w", err)
		}
		return nil
	})
}

// GetCourierByID retrieves a courier by id.
func (r *Repository) GetCourierByID(ctx context.Context, courierID uint) (*entities.Courier, error) {
	var courier entities.Courier
	err := r.conn.Do(ctx, func(db *gorm.DB) error {
		return db.First(&courier, "courier_id = ?", courierID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourierNotFound
		}
		return nil, err
	}
	return &courier, nil
}
