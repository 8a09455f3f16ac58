package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/repository"
)

// Compile-time check that *DB implements repository.LikeRepository.
var _ repository.LikeRepository = (*DB)(nil)

// counterRetries bounds the optimistic loop. Contention on a single
// project's counter is rare enough that hitting this limit means something
// is genuinely wrong.
const counterRetries = 10

// HasLiked reports whether a like record exists for (projectID, userID).
func (db *DB) HasLiked(ctx context.Context, projectID, userID string) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM project_likes WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: checking like on %s: %w", projectID, err)
	}
	return true, nil
}

// AddLike writes the like record. INSERT OR IGNORE keeps a racing duplicate
// from failing: the composite primary key means there is only one slot.
func (db *DB) AddLike(ctx context.Context, projectID, userID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_likes (project_id, user_id, liked_at)
		 VALUES (?, ?, ?)`,
		projectID, userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding like on %s: %w", projectID, err)
	}
	return nil
}

// RemoveLike deletes the like record. Removing an absent record is not an
// error — the toggle's existence check already decided the direction.
func (db *DB) RemoveLike(ctx context.Context, projectID, userID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM project_likes WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing like on %s: %w", projectID, err)
	}
	return nil
}

// AdjustLikes moves the like counter by delta through an optimistic
// transaction: read the current value, compute the next one (floored at
// zero), write it only if the stored value hasn't changed, retry otherwise.
// Two sessions toggling at once therefore never lose an update — the loser
// of the write race re-reads and reapplies its delta.
func (db *DB) AdjustLikes(ctx context.Context, projectID string, delta int) (int, error) {
	return db.transactCounter(ctx, projectID, "likes", func(current int) int {
		next := current + delta
		if next < 0 {
			return 0
		}
		return next
	})
}

// IncrementViews bumps the view counter by one. Same primitive as likes;
// deliberately no per-user dedup, so revisits count again.
func (db *DB) IncrementViews(ctx context.Context, projectID string) (int, error) {
	return db.transactCounter(ctx, projectID, "views", func(current int) int {
		return current + 1
	})
}

// transactCounter is the read-compute-write-if-unchanged loop shared by both
// counters. column is always a literal from this file, never caller input.
func (db *DB) transactCounter(ctx context.Context, projectID, column string, compute func(int) int) (int, error) {
	for attempt := 0; attempt < counterRetries; attempt++ {
		var current int
		err := db.conn.QueryRowContext(ctx,
			`SELECT `+column+` FROM projects WHERE id = ?`, projectID,
		).Scan(&current)
		if err == sql.ErrNoRows {
			return 0, apperror.NotFound("project", projectID)
		}
		if err != nil {
			return 0, fmt.Errorf("sqlite: reading %s counter on %s: %w", column, projectID, err)
		}

		next := compute(current)

		// The WHERE clause re-checks the value we read. If another session
		// committed in between, zero rows match and we go around again.
		result, err := db.conn.ExecContext(ctx,
			`UPDATE projects SET `+column+` = ? WHERE id = ? AND `+column+` = ?`,
			next, projectID, current,
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: writing %s counter on %s: %w", column, projectID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if n == 1 {
			return next, nil
		}
	}
	return 0, fmt.Errorf("sqlite: %s counter on %s: gave up after %d conflicts",
		column, projectID, counterRetries)
}
