package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/johnstonks-git/klimata/internal/core/domain"
)

// uniqueViolation is the PostgreSQL error code raised when an insert hits
// the accounts primary key. It is what makes concurrent registration of the
// same username race-free: the constraint admits exactly one writer.
const uniqueViolation = "23505"

// CredentialRepository implements ports.CredentialStore over PostgreSQL.
type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Put(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)`,
		username, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Get(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM accounts WHERE username = $1`,
		username,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("find account: %w", err)
	}
	return hash, nil
}

func (r *CredentialRepository) Update(ctx context.Context, username, newPasswordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE username = $1`,
		username, newPasswordHash,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireOneRow(res)
}

func (r *CredentialRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE username = $1`,
		username,
	)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
