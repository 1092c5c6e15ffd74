package auth

import "sync"

// Session is the single source of truth for who is logged in. The zero
// value is logged out.
type Session struct {
	mu        sync.RWMutex
	courierID uint
	active    bool
}

// Current returns the logged-in courier id, or false when nobody is.
func (s *Session) Current() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courierID, s.active
}

func (s *Session) set(courierID uint) {
	s.mu.Lock()
	s.courierID, s.active = courierID, true
	s.mu.Unlock()
}

// Clear logs the courier out.
func (s *Session) Clear() {
	s.mu.Lock()
	s.courierID, s.active = 0, false
	s.mu.Unlock()
}
