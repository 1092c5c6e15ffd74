package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/desk"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Refresher re-queries whatever the courier is looking at.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshScheduler periodically refreshes the active desk table so books
// claimed by other couriers disappear without a click.
type RefreshScheduler struct {
	desk Refresher
	cfg  config.Refresh

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewRefreshScheduler(d Refresher, cfg config.Refresh) *RefreshScheduler {
	return &RefreshScheduler{
		desk: d,
		cfg:  cfg,
		cron: cron.New(cron.WithParser(parser)),
	}
}

// ValidateSchedule checks a cron expression or an @every descriptor.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return nil
}

// Start schedules the refresh job if enabled. It stops when ctx is done.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		log.Printf("[scheduler] refresh disabled")
		return nil
	}
	if err := ValidateSchedule(s.cfg.Schedule); err != nil {
		return err
	}

	// The job must not take s.mu: Stop holds it while waiting for a running job.
	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.runRefresh(ctx) })
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("[scheduler] refresh started with schedule '%s'", s.cfg.Schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running refresh to finish and stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false
	log.Printf("[scheduler] refresh stopped")
}

func (s *RefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next refresh will occur, or nil when stopped.
func (s *RefreshScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *RefreshScheduler) runRefresh(ctx context.Context) {
	err := s.desk.Refresh(ctx)
	switch {
	case err == nil, errors.Is(err, desk.ErrNoSession):
	default:
		log.Printf("[scheduler] refresh failed: %v", err)
	}
}
