package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/repository"
)

// Compile-time check that *DB implements repository.UsernameRepository.
var _ repository.UsernameRepository = (*DB)(nil)

// Claim reserves usernameLower for uid.
//
// This is the one genuine optimistic-concurrency point in the system: two
// users racing for the same handle must not both win. The primary key on
// username_lower decides the race — INSERT OR IGNORE commits for exactly
// one writer, and the loser observes zero rows affected. No read happens
// before the write, so there is no window to get wrong.
func (db *DB) Claim(ctx context.Context, usernameLower, uid string) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO usernames (username_lower, uid, created_at)
		 VALUES (?, ?, ?)`,
		usernameLower, uid, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: claiming username %s: %w", usernameLower, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 1 {
		return nil // we won the slot
	}

	// The key already existed. If we already hold it, the claim is a no-op;
	// otherwise someone else got there first.
	holder, err := db.Resolve(ctx, usernameLower)
	if err != nil {
		return err
	}
	if holder == uid {
		return nil
	}
	return apperror.Conflict("username is already taken")
}

// Release deletes the reservation. Missing keys are fine: release runs
// best-effort after a successful claim of a new handle, and a crash between
// claim and release just leaves an orphaned key.
func (db *DB) Release(ctx context.Context, usernameLower string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM usernames WHERE username_lower = ?`, usernameLower)
	if err != nil {
		return fmt.Errorf("sqlite: releasing username %s: %w", usernameLower, err)
	}
	return nil
}

// Resolve returns the uid holding usernameLower, or apperror.ErrNotFound.
func (db *DB) Resolve(ctx context.Context, usernameLower string) (string, error) {
	var uid string
	err := db.conn.QueryRowContext(ctx,
		`SELECT uid FROM usernames WHERE username_lower = ?`, usernameLower,
	).Scan(&uid)
	if err == sql.ErrNoRows {
		return "", apperror.NotFound("username", usernameLower)
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: resolving username %s: %w", usernameLower, err)
	}
	return uid, nil
}
