package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Service struct {
	users     UserRepository
	blacklist TokenBlacklist
	secret    []byte
	tokenTTL  time.Duration
}

func NewService(users UserRepository, blacklist TokenBlacklist, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:     users,
		blacklist: blacklist,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and returns it together with a signed bearer
// token, so a fresh registration is immediately authenticated.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || len(password) < minPasswordLength {
		return User{}, "", ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, "", ErrInvalidInput
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if !errors.Is(err, errUserNotFound) {
		return User{}, "", fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("register: %w", err)
	}

	user := storedUser{
		User: User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return User{}, "", fmt.Errorf("register: %w", err)
	}

	token, err := signToken(s.secret, user.ID, s.tokenTTL, time.Now().UTC())
	if err != nil {
		return User{}, "", fmt.Errorf("register: %w", err)
	}
	return user.User, token, nil
}

// Login answers with the same error for an unknown email and a wrong
// password, so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := signToken(s.secret, user.ID, s.tokenTTL, time.Now().UTC())
	if err != nil {
		return User{}, "", fmt.Errorf("login: %w", err)
	}
	return user.User, token, nil
}

// VerifyToken authenticates a bearer token and returns the owning user id.
// Revoked (blacklisted) tokens fail exactly like malformed ones.
func (s *Service) VerifyToken(ctx context.Context, token string) (string, error) {
	userID, _, err := parseToken(s.secret, token)
	if err != nil {
		return "", ErrInvalidToken
	}

	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	if revoked {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	_, expiresAt, err := parseToken(s.secret, token)
	if err != nil {
		return ErrInvalidToken
	}
	if err := s.blacklist.Add(ctx, token, expiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// SweepBlacklist drops blacklisted tokens that have expired on their own and
// no longer need tracking.
func (s *Service) SweepBlacklist(ctx context.Context) (int64, error) {
	return s.blacklist.DeleteExpired(ctx, time.Now().UTC())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
