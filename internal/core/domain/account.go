package domain

import (
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid username or password input")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Account models one registered user. The plaintext password never leaves
// the verification path; only the salted hash is stored.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
