package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnstonks-git/klimata/internal/core/domain"
)

type stubCredentialStore struct {
	hashes map[string]string
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{hashes: make(map[string]string)}
}

func (s *stubCredentialStore) Put(_ context.Context, username, passwordHash string) error {
	if _, exists := s.hashes[username]; exists {
		return domain.ErrDuplicateUsername
	}
	s.hashes[username] = passwordHash
	return nil
}

func (s *stubCredentialStore) Get(_ context.Context, username string) (string, error) {
	hash, ok := s.hashes[username]
	if !ok {
		return "", domain.ErrNotFound
	}
	return hash, nil
}

func (s *stubCredentialStore) Update(_ context.Context, username, newPasswordHash string) error {
	if _, ok := s.hashes[username]; !ok {
		return domain.ErrNotFound
	}
	s.hashes[username] = newPasswordHash
	return nil
}

func (s *stubCredentialStore) Delete(_ context.Context, username string) error {
	if _, ok := s.hashes[username]; !ok {
		return domain.ErrNotFound
	}
	delete(s.hashes, username)
	return nil
}

func newTestAuthService(store *stubCredentialStore) *AuthService {
	return NewAuthService(store, 6, zerolog.Nop())
}

func TestAuthService_RegisterThenVerify(t *testing.T) {
	store := newStubCredentialStore()
	svc := newTestAuthService(store)

	if err := svc.Register(context.Background(), "alice", "secretpw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	hash := store.hashes["alice"]
	if hash == "secretpw" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secretpw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if err := svc.Verify(context.Background(), "alice", "secretpw"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.Verify(context.Background(), "alice", "wrongpw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubCredentialStore())

	if err := svc.Register(context.Background(), "", "secretpw"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", "short"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthService_Register_DuplicateSucceedsExactlyOnce(t *testing.T) {
	svc := newTestAuthService(newStubCredentialStore())

	if err := svc.Register(context.Background(), "bob", "secretpw"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := svc.Register(context.Background(), "bob", "otherpw1"); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Verify_NoEnumerationLeak(t *testing.T) {
	svc := newTestAuthService(newStubCredentialStore())

	if err := svc.Register(context.Background(), "carol", "secretpw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	wrongPassword := svc.Verify(context.Background(), "carol", "wrongpw")
	unknownUser := svc.Verify(context.Background(), "ghost", "wrongpw")

	if wrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownUser != wrongPassword {
		t.Fatalf("unknown user must be indistinguishable from wrong password, got %v vs %v", unknownUser, wrongPassword)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newTestAuthService(newStubCredentialStore())

	if err := svc.Register(context.Background(), "dave", "oldpassword"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.ChangePassword(context.Background(), "dave", "newpassword"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if err := svc.Verify(context.Background(), "dave", "newpassword"); err != nil {
		t.Fatalf("verify with new password failed: %v", err)
	}
	if err := svc.Verify(context.Background(), "dave", "oldpassword"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubCredentialStore())

	if err := svc.ChangePassword(context.Background(), "ghost", "newpassword"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_Remove(t *testing.T) {
	store := newStubCredentialStore()
	svc := newTestAuthService(store)

	if err := svc.Register(context.Background(), "erin", "secretpw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Remove(context.Background(), "erin"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := store.hashes["erin"]; ok {
		t.Fatal("expected account to be gone")
	}
	if err := svc.Remove(context.Background(), "erin"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}
