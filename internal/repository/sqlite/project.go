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

// Compile-time check that *DB implements repository.ProjectRepository.
var _ repository.ProjectRepository = (*DB)(nil)

// encodeTags serializes the ordered tag list into the tags text column.
// nil and empty both encode as "[]" so scans never see NULL.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

const projectColumns = `id, owner_id, title, html, css, js, description, tags,
	is_public, is_featured, likes, views, published_at, updated_at`

// scanProject reads one project row. Works for both *sql.Row and *sql.Rows
// via the shared Scan signature.
func scanProject(scan func(dest ...any) error) (*model.Project, error) {
	var (
		p           model.Project
		tags        string
		publishedAt sql.NullTime
	)
	err := scan(
		&p.ID, &p.OwnerID, &p.Title, &p.HTML, &p.CSS, &p.JS,
		&p.Description, &tags, &p.IsPublic, &p.IsFeatured,
		&p.Likes, &p.Views, &publishedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = decodeTags(tags)
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	return &p, nil
}

// Create inserts a new project, generating its ID and updatedAt.
// The pointer is mutated so the caller immediately sees the assigned ID.
func (db *DB) Create(ctx context.Context, p *model.Project) error {
	p.ID = xid.New().String()
	p.UpdatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO projects
		 (id, owner_id, title, html, css, js, description, tags,
		  is_public, is_featured, likes, views, published_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Title, p.HTML, p.CSS, p.JS,
		p.Description, encodeTags(p.Tags), p.IsPublic, p.IsFeatured,
		p.Likes, p.Views, p.PublishedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating project: %w", err)
	}
	return nil
}

// GetByID returns the project or apperror.ErrNotFound.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Project, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", id)
		}
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}
	return p, nil
}

// ListByOwner returns all projects owned by ownerID. No ORDER BY: the owner
// index is the one this query gets, so the service sorts by updatedAt.
func (db *DB) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ListOrdered returns the top `limit` projects by the given field,
// descending, public and private alike — the caller filters.
func (db *DB) ListOrdered(ctx context.Context, orderBy repository.OrderField, limit int) ([]model.Project, error) {
	var column string
	switch orderBy {
	case repository.OrderByPublishedAt:
		column = "published_at"
	case repository.OrderByLikes:
		column = "likes"
	default:
		return nil, fmt.Errorf("sqlite: unsupported order field %q", orderBy)
	}
	if limit <= 0 {
		limit = 50
	}

	// column comes from the switch above, never from the caller's string.
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 ORDER BY `+column+` DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects by %s: %w", column, err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func collectProjects(rows *sql.Rows) ([]model.Project, error) {
	projects := make([]model.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}
	return projects, nil
}

// UpdateContent patches only the editable documents and the title. Every
// other field — visibility, tags, counters, publishedAt — is preserved,
// which is what makes saving over a published project safe.
func (db *DB) UpdateContent(ctx context.Context, id, title, html, css, js string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, html = ?, css = ?, js = ?, updated_at = ?
		 WHERE id = ?`,
		title, html, css, js, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

func (db *DB) Rename(ctx context.Context, id, title string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: renaming project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

func (db *DB) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET is_public = ?, updated_at = ? WHERE id = ?`,
		isPublic, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting visibility on project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

func (db *DB) SetFeatured(ctx context.Context, id string, isFeatured bool) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET is_featured = ?, updated_at = ? WHERE id = ?`,
		isFeatured, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting featured on project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

// Publish makes the project public with its community metadata.
// COALESCE keeps the original publishedAt on re-publish, so a project's
// position in the "newest" feed doesn't reset when its description changes.
func (db *DB) Publish(ctx context.Context, id, description string, tags []string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET is_public = 1,
		     description = ?,
		     tags = ?,
		     published_at = COALESCE(published_at, ?),
		     updated_at = ?
		 WHERE id = ?`,
		description, encodeTags(tags), time.Now(), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: publishing project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

// UpdatePublished patches only the provided metadata fields.
func (db *DB) UpdatePublished(ctx context.Context, id string, fields repository.PublishedFields) error {
	// Build the SET clause from whichever fields are present. updated_at
	// always moves.
	set := "updated_at = ?"
	args := []any{time.Now()}

	if fields.Title != nil {
		set += ", title = ?"
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		set += ", description = ?"
		args = append(args, *fields.Description)
	}
	if fields.Tags != nil {
		set += ", tags = ?"
		args = append(args, encodeTags(*fields.Tags))
	}
	args = append(args, id)

	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating published project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

// Unpublish hides the project and clears its feed position.
func (db *DB) Unpublish(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE projects
		 SET is_public = 0, published_at = NULL, updated_at = ?
		 WHERE id = ?`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unpublishing project %s: %w", id, err)
	}
	return requireRow(result, "project", id)
}

// requireRow turns a zero-rows-affected result into NotFound.
func requireRow(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
