// Package audit records what happened at the desk: every login attempt and
// the outcome of every select, deselect, mark and comment.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookcourier/internal/entities"
)

// Repository stores and reads audit events.
type Repository interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetEvents(ctx context.Context, courierID uint, limit, offset int) ([]entities.AuditEvent, int64, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging. A nil *Service or a disabled
// one records nothing.
type Service struct {
	repo    Repository
	enabled bool
}

// NewService creates a new audit service.
func NewService(repo Repository, enabled bool) *Service {
	return &Service{repo: repo, enabled: enabled}
}

// Log writes the event synchronously on its own connection. Failures are
// logged and swallowed: auditing never changes the outcome of an action.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if s == nil || !s.enabled {
		return
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if err := s.repo.LogEvent(ctx, event); err != nil {
		log.Printf("[audit] failed to log %s/%s event %s: %v", event.EventType, event.Action, event.EventID, err)
	}
}

// LogAuth records a login attempt. rawCourierID is what was typed, kept in
// the description when it is not a valid id.
func (s *Service) LogAuth(ctx context.Context, courierID uint, rawCourierID, action, ipAddr string, err error) {
	event := &entities.AuditEvent{
		CourierID:   courierID,
		EventType:   entities.AuditEventAuth,
		Action:      action,
		Description: truncate("courier id "+rawCourierID, 500),
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.Log(ctx, event)
}

// LogAction records the outcome of a unit of work on a task.
func (s *Service) LogAction(ctx context.Context, courierID uint, eventType entities.AuditEventType, key entities.TaskKey, err error) {
	event := &entities.AuditEvent{
		CourierID:   courierID,
		EventType:   eventType,
		Action:      "book_" + string(eventType),
		Description: truncate(string(key.Kind)+" "+key.ISBN, 500),
		TaskKey:     truncate(key.String(), 200),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.Log(ctx, event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, courierID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if s == nil {
		return nil, 0, nil
	}
	return s.repo.GetEvents(ctx, courierID, limit, offset)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	return s.repo.DeleteOldEvents(ctx, time.Now().Add(-retention))
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
