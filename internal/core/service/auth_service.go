package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnstonks-git/klimata/internal/core/domain"
	"github.com/johnstonks-git/klimata/internal/core/ports"
)

const defaultMinPasswordLen = 8

// dummyHash is compared against when the username is unknown so that a miss
// costs the same bcrypt work as a wrong password. It never matches any input.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, credential verification, and password
// updates over a CredentialStore. Plaintext passwords exist only inside these
// calls; the store only ever sees bcrypt hashes.
type AuthService struct {
	store          ports.CredentialStore
	minPasswordLen int
	logger         zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, minPasswordLen int, logger zerolog.Logger) *AuthService {
	if minPasswordLen <= 0 {
		minPasswordLen = defaultMinPasswordLen
	}
	return &AuthService{store: store, minPasswordLen: minPasswordLen, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || len(password) < s.minPasswordLen {
		return domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.Put(ctx, username, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("account registered")
	return nil
}

func (s *AuthService) Verify(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.store.Get(ctx, username)
	if err != nil {
		if err == domain.ErrNotFound {
			// Burn the same bcrypt cost as a real comparison so an unknown
			// username is indistinguishable from a wrong password.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if username == "" || len(newPassword) < s.minPasswordLen {
		return domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.Update(ctx, username, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("password changed")
	return nil
}

func (s *AuthService) Remove(ctx context.Context, username string) error {
	if username == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("account removed")
	return nil
}
