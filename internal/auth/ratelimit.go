package auth

import (
	"sync"
	"time"
)

// RateLimiter counts failed logins per client IP and courier id in a
// sliding window and locks the pair out once the limit is reached.
type RateLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	now             func() time.Time
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

type RateLimitConfig struct {
	MaxAttempts     int           // Failures before lockout (default: 5)
	WindowDuration  time.Duration // Window for counting failures (default: 15m)
	LockoutDuration time.Duration // Lockout length (default: 5m)
	CleanupInterval time.Duration // 0 disables the background sweep
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = 15 * time.Minute
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 5 * time.Minute
	}

	rl := &RateLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxAttempts,
		windowDuration:  cfg.WindowDuration,
		lockoutDuration: cfg.LockoutDuration,
		now:             time.Now,
		stopCleanup:     make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go rl.cleanupLoop(cfg.CleanupInterval)
	}
	return rl
}

// Stop ends the background sweep. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func makeKey(ip, courierID string) string {
	return ip + "|" + courierID
}

// Allow reports whether another login attempt may be made and, if not,
// how long until the lockout ends.
func (rl *RateLimiter) Allow(ip, courierID string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, ok := rl.attempts[makeKey(ip, courierID)]
	if !ok {
		return true, 0
	}
	if now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure counts a rejected login. It returns true once the pair is
// locked out.
func (rl *RateLimiter) RecordFailure(ip, courierID string) (bool, time.Duration) {
	key := makeKey(ip, courierID)
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, ok := rl.attempts[key]
	if !ok || now.Sub(record.firstAttempt) > rl.windowDuration {
		record = &attemptRecord{firstAttempt: now}
		rl.attempts[key] = record
	}

	record.count++
	if record.count >= rl.maxAttempts {
		record.lockedUntil = now.Add(rl.lockoutDuration)
		record.count = 0
		record.firstAttempt = now
		return true, rl.lockoutDuration
	}
	return false, 0
}

// RecordSuccess forgets earlier failures for the pair.
func (rl *RateLimiter) RecordSuccess(ip, courierID string) {
	rl.mu.Lock()
	delete(rl.attempts, makeKey(ip, courierID))
	rl.mu.Unlock()
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, record := range rl.attempts {
		if now.Sub(record.firstAttempt) > rl.windowDuration && !now.Before(record.lockedUntil) {
			delete(rl.attempts, key)
		}
	}
}
