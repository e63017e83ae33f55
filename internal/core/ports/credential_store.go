package ports

import "context"

// CredentialStore defines the durable username → password hash mapping.
// Every mutation is committed before the call returns; absence is signalled
// with domain.ErrNotFound, never panicked.
type CredentialStore interface {
	// Put inserts a new record. Fails with domain.ErrDuplicateUsername when
	// the username already exists — concurrent inserts of the same username
	// must let exactly one caller through.
	Put(ctx context.Context, username, passwordHash string) error
	// Get returns the stored hash or domain.ErrNotFound.
	Get(ctx context.Context, username string) (string, error)
	// Update atomically overwrites the hash. Fails with domain.ErrNotFound
	// when the account does not exist.
	Update(ctx context.Context, username, newPasswordHash string) error
	// Delete removes the record. Fails with domain.ErrNotFound when absent.
	Delete(ctx context.Context, username string) error
}
