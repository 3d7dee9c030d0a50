package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS token_blacklist (
			token TEXT PRIMARY KEY,
			expires_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_blacklist_expiry ON token_blacklist(expires_at_unix);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user storedUser) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (user_id, name, email, password_hash, created_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (storedUser, error) {
	return s.getUser(ctx, `SELECT user_id, name, email, password_hash, created_at_unix FROM users WHERE email = ?`, email)
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (storedUser, error) {
	return s.getUser(ctx, `SELECT user_id, name, email, password_hash, created_at_unix FROM users WHERE user_id = ?`, id)
}

func (s *SQLiteStore) getUser(ctx context.Context, query, key string) (storedUser, error) {
	var (
		user          storedUser
		createdAtUnix int64
	)
	err := s.db.QueryRowContext(ctx, query, key).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAtUnix)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storedUser{}, errUserNotFound
		}
		return storedUser{}, err
	}
	user.CreatedAt = time.Unix(0, createdAtUnix).UTC()
	return user, nil
}

func (s *SQLiteStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO token_blacklist (token, expires_at_unix) VALUES (?, ?)`,
		token,
		expiresAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) Contains(ctx context.Context, token string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM token_blacklist WHERE token = ? LIMIT 1`,
		token,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM token_blacklist WHERE expires_at_unix < ?`,
		now.UnixNano(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
