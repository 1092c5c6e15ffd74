package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

type Repository struct {
	conn *database.Connector
}

func NewRepository(conn *database.Connector) *Repository {
	return &Repository{conn: conn}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.conn.Do(ctx, func(db *gorm.DB) error {
		return db.Create(event).Error
	})
}

// GetEvents retrieves paginated audit events for a courier, most recent first.
// A zero courierID returns events for everyone.
func (r *Repository) GetEvents(ctx context.Context, courierID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var (
		events []entities.AuditEvent
		total  int64
	)
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.conn.Do(ctx, func(db *gorm.DB) error {
		query := db.Model(&entities.AuditEvent{})
		if courierID > 0 {
			query = query.Where("courier_id = ?", courierID)
		}
		if err := query.Count(&total).Error; err != nil {
			return err
		}
		return query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	})
	return events, total, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	var deleted int64
	err := r.conn.Do(ctx, func(db *gorm.DB) error {
		result := db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
