package desk

import (
	"errors"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/database"
)

// Errors surfaced at the action boundary. Test with errors.Is.
var (
	ErrConnectivity  = database.ErrConnectivity
	ErrPrecondition  = database.ErrPrecondition
	ErrCommitFailure = database.ErrCommitFailure
	ErrNotFound      = auth.ErrCourierNotFound

	ErrNoSession      = errors.New("no courier is logged in")
	ErrActionDisabled = errors.New("action is not enabled for the current selection")
	ErrInvalidRow     = errors.New("row is not in the current row set")
	ErrLoginCancelled = errors.New("login cancelled")
)

// Retryable reports whether the caller should offer the credential prompt again.
func Retryable(err error) bool {
	return errors.Is(err, ErrNotFound)
}
