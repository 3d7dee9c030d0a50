// Package auth owns user accounts and bearer-token authentication for the
// quiz API.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid registration input")
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// storedUser carries the password hash, which never leaves this package.
type storedUser struct {
	User
	PasswordHash string
}

type UserRepository interface {
	CreateUser(ctx context.Context, user storedUser) error
	GetUserByEmail(ctx context.Context, email string) (storedUser, error)
	GetUserByID(ctx context.Context, id string) (storedUser, error)
}

// TokenBlacklist records revoked tokens until their natural expiry, after
// which the sweeper may drop them.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

var errUserNotFound = errors.New("user not found")
