package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCourierNotFound covers every rejected credential pair: unknown id,
// wrong hash, or an id that is not a number. The caller may retry.
var ErrCourierNotFound = errors.New("courier not found")

// CourierRepository verifies credentials against the courier table.
type CourierRepository interface {
	CountByCredentials(ctx context.Context, courierID uint, passwordHash string) (int64, error)
}

// Service logs couriers in and out of the desk session.
type Service struct {
	repo    CourierRepository
	session Session
}

// NewService creates a new authentication service with an empty session.
func NewService(repo CourierRepository) *Service {
	return &Service{repo: repo}
}

// Session returns the session this service manages.
func (s *Service) Session() *Session {
	return &s.session
}

// ParseCourierID converts the id typed into the credential prompt.
func ParseCourierID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a courier id", ErrCourierNotFound, raw)
	}
	return uint(id), nil
}

// Login logs out first, then verifies the credentials. On any failure the
// session stays empty.
func (s *Service) Login(ctx context.Context, rawCourierID, passwordHash string) (uint, error) {
	s.session.Clear()

	courierID, err := ParseCourierID(rawCourierID)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.CountByCredentials(ctx, courierID, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to verify courier %d: %w", courierID, err)
	}
	if n != 1 {
		return 0, fmt.Errorf("%w: %d", ErrCourierNotFound, courierID)
	}

	s.session.set(courierID)
	return courierID, nil
}

// Logout clears the session.
func (s *Service) Logout() {
	s.session.Clear()
}
