package http

import (
	"context"

	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/desk"
)

// Pinger reports whether the bookstore database can be reached.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains all dependencies needed to create the desk router.
type RouterConfig struct {
	Desk     *desk.Desk
	Audit    *audit.Service
	Database Pinger

	// Login guards
	RateLimiter   *auth.RateLimiter
	CSRFSecret    []byte // Empty disables CSRF protection
	SecureCookies bool

	Version string
}
