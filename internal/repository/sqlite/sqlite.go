// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite — pure Go, no CGo, cross-compiles anywhere).
//
// The document store this mirrors could index only one field per query, so
// the queries here deliberately keep that shape: every list orders by a
// single indexed column and any second predicate is applied by the caller.
// Counter updates use an optimistic read-compute-write-if-unchanged loop
// instead of leaning on SQL's ability to do `SET likes = likes + 1` — the
// transaction primitive is the contract, the engine is an implementation
// detail.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and implements every repository interface.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight — without it
	// every like toggle would block the community feed.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	// With a pool of connections, two writers can still collide at the file
	// level; waiting beats surfacing SQLITE_BUSY to a like toggle.
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	// projects: owner_id, published_at and likes each get an index because
	// each one backs exactly one ordered query (owner listing, newest feed,
	// trending feed).
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id           TEXT PRIMARY KEY,
			owner_id     TEXT NOT NULL,
			title        TEXT NOT NULL DEFAULT '',
			html         TEXT NOT NULL DEFAULT '',
			css          TEXT NOT NULL DEFAULT '',
			js           TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			tags         TEXT NOT NULL DEFAULT '[]',
			is_public    INTEGER NOT NULL DEFAULT 0,
			is_featured  INTEGER NOT NULL DEFAULT 0,
			likes        INTEGER NOT NULL DEFAULT 0,
			views        INTEGER NOT NULL DEFAULT 0,
			published_at DATETIME,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_projects_owner_id ON projects(owner_id);
		CREATE INDEX IF NOT EXISTS idx_projects_published_at ON projects(published_at);
		CREATE INDEX IF NOT EXISTS idx_projects_likes ON projects(likes);
	`)
	if err != nil {
		return fmt.Errorf("creating projects table: %w", err)
	}

	// project_likes: the composite primary key IS the one-like-per-user
	// rule; a second like from the same user has nowhere to go.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS project_likes (
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL,
			liked_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (project_id, user_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating project_likes table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			github_id      INTEGER NOT NULL UNIQUE,
			display_name   TEXT NOT NULL DEFAULT '',
			email          TEXT NOT NULL DEFAULT '',
			photo_url      TEXT NOT NULL DEFAULT '',
			bio            TEXT NOT NULL DEFAULT '',
			is_public      INTEGER NOT NULL DEFAULT 0,
			links          TEXT NOT NULL DEFAULT '{}',
			username       TEXT NOT NULL DEFAULT '',
			username_lower TEXT NOT NULL DEFAULT '',
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// usernames: the reservation ledger. The primary key on username_lower
	// is what makes a claim race have exactly one winner.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS usernames (
			username_lower TEXT PRIMARY KEY,
			uid            TEXT NOT NULL,
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating usernames table: %w", err)
	}

	return nil
}
