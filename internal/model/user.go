package model

import "time"

// ProfileLinks holds the optional social links a user can show on their
// public profile. Empty strings mean "not set" and are omitted from JSON.
type ProfileLinks struct {
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// User is a registered account plus its public profile.
//
// Identity comes from GitHub OAuth, so GitHubID (unique) is the external
// key; ID is our own xid so primary keys don't depend on a third party's
// numbering. DisplayName/Email/PhotoURL are refreshed from GitHub on every
// login; Bio, IsPublic, Links and the username fields belong to the user
// and are never overwritten by the auth flow.
//
// Username is a cache: the usernames reservation table is the authority for
// who holds a handle. UsernameLower is the lowercase-normalized form and is
// the key under which the reservation is recorded.
type User struct {
	ID            string       `json:"id"`
	GitHubID      int64        `json:"-"`
	DisplayName   string       `json:"displayName"`
	Email         string       `json:"email,omitempty"`
	PhotoURL      string       `json:"photoURL"`
	Bio           string       `json:"bio"`
	IsPublic      bool         `json:"isPublic"`
	Links         ProfileLinks `json:"links"`
	Username      string       `json:"username,omitempty"`
	UsernameLower string       `json:"-"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Template is a bundled, read-only starting point for new projects.
// Templates ship with the binary and are never mutated at runtime; forking
// one copies its documents into a fresh Project owned by the forking user.
type Template struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	HTML         string   `json:"html"`
	CSS          string   `json:"css"`
	JS           string   `json:"js"`
	ThumbnailURL string   `json:"thumbnailUrl"`
}
