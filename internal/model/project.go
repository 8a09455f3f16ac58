// Package model defines the data structures shared by every layer.
package model

import "time"

// Project is one saved pen: three editable documents plus the metadata the
// dashboard and community feed need.
//
// Counters (Likes, Views) are never written directly by application code —
// they only move through the repository's atomic counter operations, so the
// invariant "Likes equals the number of like records" holds under concurrent
// sessions.
//
// PublishedAt is a pointer because "never published" is a real state, not a
// zero time. It is set on first publish and cleared on unpublish.
type Project struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	HTML        string     `json:"html"`
	CSS         string     `json:"css"`
	JS          string     `json:"js"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	IsPublic    bool       `json:"isPublic"`
	IsFeatured  bool       `json:"isFeatured"`
	Likes       int        `json:"likes"`
	Views       int        `json:"views"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CommunityProject is a Project joined with its owner's public identity,
// as served by the community feed. The gradient hues drive the card
// thumbnail background and are derived from the content lengths, so every
// project gets a stable, distinctive color without storing anything.
type CommunityProject struct {
	Project
	OwnerName     string `json:"ownerName"`
	OwnerPhotoURL string `json:"ownerPhotoURL"`
	OwnerUsername string `json:"ownerUsername"`
	GradientHue1  int    `json:"gradientHue1"`
	GradientHue2  int    `json:"gradientHue2"`
}

// LikeResult is what a like toggle reports back to the UI.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// LocalProject is the shape of guest work kept in the browser's local
// storage ("project-local-…" keys). It only exists on the wire: the
// migration endpoint receives these and turns them into owned Projects.
type LocalProject struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	HTML        string   `json:"html"`
	CSS         string   `json:"css"`
	JS          string   `json:"js"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
