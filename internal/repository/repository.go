// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation, but
// services never import it directly — tests swap in in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/codesplit/internal/model"
)

// OrderField selects the single indexed field a feed query orders by.
//
// The store indexes one field per query — the same constraint the original
// hosted database had. A feed fetch therefore orders by exactly one of these
// and callers apply any further predicate (like isPublic) themselves on the
// returned superset.
type OrderField string

const (
	OrderByPublishedAt OrderField = "published_at"
	OrderByLikes       OrderField = "likes"
)

// ProjectRepository persists projects.
//
// Create fills in ID and UpdatedAt on the passed struct. Mutating methods
// return apperror.ErrNotFound when the id doesn't exist (detected via rows
// affected, not a prior read). None of them check ownership — that's the
// service layer's job.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)

	// ListByOwner returns every project owned by ownerID, in storage order.
	// The owner lookup uses the one index this query gets, so callers sort
	// by updatedAt themselves.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error)

	// ListOrdered returns the top `limit` projects ordered by the given
	// field descending, with no visibility filtering.
	ListOrdered(ctx context.Context, orderBy OrderField, limit int) ([]model.Project, error)

	// UpdateContent patches only title/html/css/js/updatedAt, preserving
	// visibility, tags, counters and everything else.
	UpdateContent(ctx context.Context, id, title, html, css, js string) error

	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, isPublic bool) error
	SetFeatured(ctx context.Context, id string, isFeatured bool) error

	// Publish marks the project public with its community metadata.
	// publishedAt is set only if not already set (re-publishing keeps the
	// original date); likes/views are left untouched.
	Publish(ctx context.Context, id, description string, tags []string) error

	// UpdatePublished patches only the provided (non-nil) metadata fields.
	UpdatePublished(ctx context.Context, id string, fields PublishedFields) error

	// Unpublish clears isPublic and publishedAt.
	Unpublish(ctx context.Context, id string) error
}

// PublishedFields is a partial patch for published-project metadata.
// Nil pointers mean "leave unchanged".
type PublishedFields struct {
	Title       *string
	Description *string
	Tags        *[]string
}

// LikeRepository tracks per-user like records and the two counters.
//
// AdjustLikes and IncrementViews are the only way the counters move. Both
// run an optimistic transaction: read the current value, compute the next
// one, write it only if the stored value is unchanged, retry on conflict.
// Concurrent sessions therefore never lose an increment or decrement.
type LikeRepository interface {
	HasLiked(ctx context.Context, projectID, userID string) (bool, error)
	AddLike(ctx context.Context, projectID, userID string) error
	RemoveLike(ctx context.Context, projectID, userID string) error

	// AdjustLikes applies delta to the like counter, clamped at zero, and
	// returns the resulting count.
	AdjustLikes(ctx context.Context, projectID string, delta int) (int, error)

	// IncrementViews bumps the view counter and returns the new value.
	IncrementViews(ctx context.Context, projectID string) (int, error)
}

// ProfileUpdate is a partial patch for the user-owned profile fields.
// Nil pointers mean "leave unchanged"; auth-sourced fields (displayName,
// email, photoURL) are refreshed through Upsert instead.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	IsPublic    *bool
	Links       *model.ProfileLinks
}

// UserRepository persists accounts and profiles.
type UserRepository interface {
	// Upsert creates the account on first login or refreshes the
	// auth-sourced fields on a returning one, keyed by GitHubID. The
	// user-owned profile fields (bio, links, username, visibility) are
	// preserved on update. The passed struct gets the canonical ID and
	// timestamps filled in.
	Upsert(ctx context.Context, u *model.User) error

	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, p ProfileUpdate) error
	SetUsername(ctx context.Context, id, username, usernameLower string) error
}

// UsernameRepository is the authority for handle ownership: one reservation
// record per lowercase username, existence is proof of ownership.
type UsernameRepository interface {
	// Claim atomically reserves usernameLower for uid. When two writers
	// race, exactly one wins; the loser gets apperror.ErrConflict. Claiming
	// a key already held by the same uid is a no-op.
	Claim(ctx context.Context, usernameLower, uid string) error

	// Release deletes the reservation. Deleting a missing key is not an
	// error — release is best-effort cleanup after a successful claim.
	Release(ctx context.Context, usernameLower string) error

	// Resolve returns the uid holding usernameLower, or ErrNotFound.
	Resolve(ctx context.Context, usernameLower string) (string, error)
}
