package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeUserRepo struct {
	byEmail map[string]storedUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]storedUser)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user storedUser) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return errors.New("duplicate email")
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (storedUser, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return storedUser{}, errUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (storedUser, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return storedUser{}, errUserNotFound
}

type fakeBlacklist struct {
	tokens map[string]time.Time
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{tokens: make(map[string]time.Time)}
}

func (f *fakeBlacklist) Add(_ context.Context, token string, expiresAt time.Time) error {
	f.tokens[token] = expiresAt
	return nil
}

func (f *fakeBlacklist) Contains(_ context.Context, token string) (bool, error) {
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeBlacklist) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for token, expiresAt := range f.tokens {
		if !expiresAt.After(now) {
			delete(f.tokens, token)
			removed++
		}
	}
	return removed, nil
}

func newTestService() *Service {
	return NewService(newFakeUserRepo(), newFakeBlacklist(), "test-secret", time.Hour)
}

func TestRegisterReturnsUserAndValidToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Asha", "Asha@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}

	userID, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken on registration token: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token user = %q, want %q", userID, user.ID)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"blank name", "  ", "a@example.com", "secret1"},
		{"short password", "Asha", "a@example.com", "12345"},
		{"malformed email", "Asha", "not-an-email", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Same address with different case still collides.
	if _, _, err := svc.Register(ctx, "Other", "ASHA@example.com", "secret2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Login(ctx, "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged-in user = %q, want %q", user.ID, registered.ID)
	}
	if _, err := svc.VerifyToken(ctx, token); err != nil {
		t.Errorf("VerifyToken on login token: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "asha@example.com", "wrong-pass")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret1")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt", "aa.bb.cc"} {
		if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	other := NewService(newFakeUserRepo(), newFakeBlacklist(), "other-secret", time.Hour)
	_, token, err := other.Register(ctx, "Asha", "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	svc := newTestService()
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "Asha", "asha@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.VerifyToken(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to be invalid, got %v", err)
	}

	// A fresh login issues a new usable token.
	if _, fresh, err := svc.Login(ctx, "asha@example.com", "secret1"); err != nil {
		t.Fatalf("Login after logout: %v", err)
	} else if _, err := svc.VerifyToken(ctx, fresh); err != nil {
		t.Errorf("VerifyToken on fresh token: %v", err)
	}
}

func TestLogoutRejectsInvalidToken(t *testing.T) {
	svc := newTestService()
	if err := svc.Logout(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSweepBlacklistDropsOnlyExpiredEntries(t *testing.T) {
	blacklist := newFakeBlacklist()
	svc := NewService(newFakeUserRepo(), blacklist, "test-secret", time.Hour)
	ctx := context.Background()

	now := time.Now().UTC()
	blacklist.tokens["expired"] = now.Add(-time.Minute)
	blacklist.tokens["live"] = now.Add(time.Hour)

	removed, err := svc.SweepBlacklist(ctx)
	if err != nil {
		t.Fatalf("SweepBlacklist: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, stillThere := blacklist.tokens["live"]; !stillThere {
		t.Error("live entry must survive the sweep")
	}
}

func TestSignAndParseTokenRoundTrip(t *testing.T) {
	secret := []byte("round-trip-secret")
	issued := time.Now().UTC()

	token, err := signToken(secret, "user-42", time.Hour, issued)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	userID, expiresAt, err := parseToken(secret, token)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("userID = %q, want user-42", userID)
	}
	want := issued.Add(time.Hour).Truncate(time.Second)
	if !expiresAt.Truncate(time.Second).Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, want)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	secret := []byte("round-trip-secret")
	token, err := signToken(secret, "user-42", time.Minute, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	if _, _, err := parseToken(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
