package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const auditCleanupSchedule = "@daily"

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// CleanupAuditEvents removes audit events older than retention once.
func CleanupAuditEvents(ctx context.Context, cleaner AuditEventCleaner, retention time.Duration) (int64, error) {
	if cleaner == nil {
		return 0, fmt.Errorf("audit event cleaner not configured")
	}
	if retention <= 0 {
		return 0, nil
	}

	deleted, err := cleaner.DeleteOldEvents(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("cleanup audit events: %w", err)
	}
	if deleted > 0 {
		log.Printf("[scheduler] cleaned up %d audit events older than %v", deleted, retention)
	}
	return deleted, nil
}

// AuditCleanupScheduler prunes the audit trail at startup and then daily.
type AuditCleanupScheduler struct {
	cleaner   AuditEventCleaner
	retention time.Duration

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewAuditCleanupScheduler(cleaner AuditEventCleaner, retention time.Duration) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		cleaner:   cleaner,
		retention: retention,
		cron:      cron.New(cron.WithParser(parser)),
	}
}

// Start runs one cleanup immediately and schedules the rest. A zero
// retention keeps every event and schedules nothing.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning || s.retention <= 0 {
		return nil
	}

	run := func() {
		if _, err := CleanupAuditEvents(ctx, s.cleaner, s.retention); err != nil {
			log.Printf("[scheduler] %v", err)
		}
	}
	if _, err := s.cron.AddFunc(auditCleanupSchedule, run); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	run()
	s.cron.Start()
	s.isRunning = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
}

func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
