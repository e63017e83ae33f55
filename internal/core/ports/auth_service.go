package ports

import "context"

// AuthService encapsulates password policy and hashing so no caller outside
// the verification path ever handles plaintext.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	// Verify checks the credentials. An unknown username and a wrong password
	// for a known username are observably identical: both return
	// domain.ErrInvalidCredentials after a comparable amount of work.
	Verify(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, username, newPassword string) error
	// Remove deletes the account. Exposed as a capability; no interactive
	// flow currently reaches it.
	Remove(ctx context.Context, username string) error
}
