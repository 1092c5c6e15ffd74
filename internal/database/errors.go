package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// PostgreSQL error codes the desk cares about.
const (
	PgErrUniqueViolation  = "23505" // unique_violation
	PgErrConnectionClass  = "08"    // connection_exception and friends
	PgErrAdminShutdown    = "57P01" // admin_shutdown
	PgErrCannotConnectNow = "57P03" // cannot_connect_now
)

// IsUniqueViolation reports whether err is a primary key or unique
// constraint failure from either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgErrUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// IsConnectionError reports whether err means the database could not be
// reached or dropped the connection.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, PgErrConnectionClass) ||
			pgErr.Code == PgErrAdminShutdown ||
			pgErr.Code == PgErrCannotConnectNow
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrCantOpen ||
			sqliteErr.Code == sqlite3.ErrNotADB ||
			sqliteErr.Code == sqlite3.ErrBusy
	}
	return false
}
