package desk

import "context"

// CredentialPrompt asks for a courier id and the stored form of the
// password. ok is false when the courier cancels.
type CredentialPrompt interface {
	Credentials(ctx context.Context) (courierID, passwordHash string, ok bool)
}

// CommentPrompt lets the courier edit the comment of the current row.
type CommentPrompt interface {
	EditComment(ctx context.Context, current string) (comment string, ok bool)
}

// StaticCredentials answers the prompt with fixed values, as a form post does.
type StaticCredentials struct {
	CourierID    string
	PasswordHash string
}

func (s StaticCredentials) Credentials(context.Context) (string, string, bool) {
	return s.CourierID, s.PasswordHash, true
}

// CancelledCredentials is a prompt the courier dismissed.
type CancelledCredentials struct{}

func (CancelledCredentials) Credentials(context.Context) (string, string, bool) {
	return "", "", false
}

// StaticComment replaces the current comment with its text.
type StaticComment string

func (s StaticComment) EditComment(context.Context, string) (string, bool) {
	return string(s), true
}
