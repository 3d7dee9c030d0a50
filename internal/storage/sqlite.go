// Package storage owns the sqlite connection shared by the quiz and auth
// stores.
package storage

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if necessary) the sqlite database at path. A single
// connection plus a busy timeout keeps writes serialized across the stores
// that share the handle.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "quizdeck.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
