// Package auth owns the courier session: who is logged in at the desk,
// how a password becomes the stored hash, and the guards placed in front
// of the login endpoint.
//
// # Session
//
// The desk serves one courier at a time. Session holds the courier id or
// nothing; Service.Login always clears it before verifying new
// credentials, so a failed attempt leaves the desk logged out.
//
//	svc := auth.NewService(couriers.NewRepository(conn))
//	id, err := svc.Login(ctx, "7", auth.HashPassword("7", password))
//
// # Password hashes
//
// Verification is an exact match against courier.password_hash, so the
// hash must be deterministic. HashPassword derives it with argon2id using
// a salt bound to the courier id.
//
// # Login guards
//
// The desk API wraps login with RateLimiter (failures per client IP and
// courier id), CSRFMiddleware and SecurityHeadersMiddleware.
package auth
