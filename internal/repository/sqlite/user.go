package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
)

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

func encodeLinks(links model.ProfileLinks) string {
	b, err := json.Marshal(links)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func decodeLinks(raw string) model.ProfileLinks {
	var links model.ProfileLinks
	// A bad row yields empty links rather than a failed profile load.
	_ = json.Unmarshal([]byte(raw), &links)
	return links
}

// Upsert creates the account on first login or refreshes the auth-sourced
// fields (displayName, email, photoURL) on a returning one, keyed by
// GitHubID. User-owned fields — bio, links, visibility, username — are
// never touched here, so a login can't clobber a profile edit.
func (db *DB) Upsert(ctx context.Context, u *model.User) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE github_id = ?`, u.GitHubID,
	).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up user by github_id %d: %w", u.GitHubID, err)
	}

	if existingID != "" {
		u.ID = existingID
		u.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users
			 SET display_name = ?, email = ?, photo_url = ?, updated_at = ?
			 WHERE id = ?`,
			u.DisplayName, u.Email, u.PhotoURL, u.UpdatedAt, u.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: refreshing user %s: %w", u.ID, err)
		}
		// Reload the user-owned fields so the caller gets the full profile,
		// not just what GitHub sent.
		full, err := db.GetUserByID(ctx, u.ID)
		if err != nil {
			return err
		}
		*u = *full
		return nil
	}

	now := time.Now()
	u.ID = xid.New().String()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users
		 (id, github_id, display_name, email, photo_url, bio, is_public,
		  links, username, username_lower, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '', 0, '{}', '', '', ?, ?)`,
		u.ID, u.GitHubID, u.DisplayName, u.Email, u.PhotoURL,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (githubID=%d): %w", u.GitHubID, err)
	}
	return nil
}

// GetUserByID returns the full user record or apperror.ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var (
		u     model.User
		links string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, github_id, display_name, email, photo_url, bio,
		        is_public, links, username, username_lower, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(
		&u.ID, &u.GitHubID, &u.DisplayName, &u.Email, &u.PhotoURL, &u.Bio,
		&u.IsPublic, &links, &u.Username, &u.UsernameLower,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}
	u.Links = decodeLinks(links)
	return &u, nil
}

// UpdateProfile patches the provided user-owned fields.
func (db *DB) UpdateProfile(ctx context.Context, id string, p repository.ProfileUpdate) error {
	set := "updated_at = ?"
	args := []any{time.Now()}

	if p.DisplayName != nil {
		set += ", display_name = ?"
		args = append(args, *p.DisplayName)
	}
	if p.Bio != nil {
		set += ", bio = ?"
		args = append(args, *p.Bio)
	}
	if p.IsPublic != nil {
		set += ", is_public = ?"
		args = append(args, *p.IsPublic)
	}
	if p.Links != nil {
		set += ", links = ?"
		args = append(args, encodeLinks(*p.Links))
	}
	args = append(args, id)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile %s: %w", id, err)
	}
	return requireRow(result, "user", id)
}

// SetUsername caches the claimed handle on the profile. The reservation
// table remains the authority; this is display data.
func (db *DB) SetUsername(ctx context.Context, id, username, usernameLower string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, username_lower = ?, updated_at = ? WHERE id = ?`,
		username, usernameLower, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting username on %s: %w", id, err)
	}
	return requireRow(result, "user", id)
}
