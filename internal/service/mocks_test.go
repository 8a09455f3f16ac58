package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
)

// In-memory fakes for the repository interfaces. They mimic the sqlite
// implementations' contracts (ErrNotFound via rows-affected semantics,
// atomic claims, clamped counters) closely enough for service tests.

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]model.Project
	seq      int

	createErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]model.Project)}
}

var _ repository.ProjectRepository = (*fakeProjectRepo)(nil)

func (f *fakeProjectRepo) Create(_ context.Context, p *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	p.ID = fmt.Sprintf("p%d", f.seq)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.UpdatedAt = time.Now()
	f.projects[p.ID] = *p
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	return &p, nil
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListOrdered(_ context.Context, orderBy repository.OrderField, limit int) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Project
	for _, p := range f.projects {
		out = append(out, p)
	}
	// Insertion-order simplicity: tests that care about ordering seed the
	// fields they sort on and assert on the service's re-sort.
	sortProjects(out, orderBy)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortProjects(ps []model.Project, orderBy repository.OrderField) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && less(ps[j-1], ps[j], orderBy); j-- {
			ps[j-1], ps[j] = ps[j], ps[j-1]
		}
	}
}

func less(a, b model.Project, orderBy repository.OrderField) bool {
	if orderBy == repository.OrderByLikes {
		return a.Likes < b.Likes
	}
	at, bt := time.Time{}, time.Time{}
	if a.PublishedAt != nil {
		at = *a.PublishedAt
	}
	if b.PublishedAt != nil {
		bt = *b.PublishedAt
	}
	return at.Before(bt)
}

func (f *fakeProjectRepo) mutate(id string, fn func(*model.Project)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return apperror.NotFound("project", id)
	}
	fn(&p)
	p.UpdatedAt = time.Now()
	f.projects[id] = p
	return nil
}

func (f *fakeProjectRepo) UpdateContent(_ context.Context, id, title, html, css, js string) error {
	return f.mutate(id, func(p *model.Project) {
		p.Title, p.HTML, p.CSS, p.JS = title, html, css, js
	})
}

func (f *fakeProjectRepo) Rename(_ context.Context, id, title string) error {
	return f.mutate(id, func(p *model.Project) { p.Title = title })
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return apperror.NotFound("project", id)
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) SetVisibility(_ context.Context, id string, isPublic bool) error {
	return f.mutate(id, func(p *model.Project) { p.IsPublic = isPublic })
}

func (f *fakeProjectRepo) SetFeatured(_ context.Context, id string, isFeatured bool) error {
	return f.mutate(id, func(p *model.Project) { p.IsFeatured = isFeatured })
}

func (f *fakeProjectRepo) Publish(_ context.Context, id, description string, tags []string) error {
	return f.mutate(id, func(p *model.Project) {
		p.IsPublic = true
		p.Description = description
		p.Tags = tags
		if p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
	})
}

func (f *fakeProjectRepo) UpdatePublished(_ context.Context, id string, fields repository.PublishedFields) error {
	return f.mutate(id, func(p *model.Project) {
		if fields.Title != nil {
			p.Title = *fields.Title
		}
		if fields.Description != nil {
			p.Description = *fields.Description
		}
		if fields.Tags != nil {
			p.Tags = *fields.Tags
		}
	})
}

func (f *fakeProjectRepo) Unpublish(_ context.Context, id string) error {
	return f.mutate(id, func(p *model.Project) {
		p.IsPublic = false
		p.PublishedAt = nil
	})
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]bool // projectID + "/" + userID
	repo  *fakeProjectRepo
}

func newFakeLikeRepo(repo *fakeProjectRepo) *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]bool), repo: repo}
}

var _ repository.LikeRepository = (*fakeLikeRepo)(nil)

func likeKey(projectID, userID string) string { return projectID + "/" + userID }

func (f *fakeLikeRepo) HasLiked(_ context.Context, projectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[likeKey(projectID, userID)], nil
}

func (f *fakeLikeRepo) AddLike(_ context.Context, projectID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[likeKey(projectID, userID)] = true
	return nil
}

func (f *fakeLikeRepo) RemoveLike(_ context.Context, projectID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, likeKey(projectID, userID))
	return nil
}

func (f *fakeLikeRepo) AdjustLikes(_ context.Context, projectID string, delta int) (int, error) {
	var next int
	err := f.repo.mutate(projectID, func(p *model.Project) {
		next = p.Likes + delta
		if next < 0 {
			next = 0
		}
		p.Likes = next
	})
	return next, err
}

func (f *fakeLikeRepo) IncrementViews(_ context.Context, projectID string) (int, error) {
	var next int
	err := f.repo.mutate(projectID, func(p *model.Project) {
		p.Views++
		next = p.Views
	})
	return next, err
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Upsert(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.users {
		if existing.GitHubID == u.GitHubID {
			existing.DisplayName = u.DisplayName
			existing.Email = u.Email
			existing.PhotoURL = u.PhotoURL
			f.users[id] = existing
			*u = existing
			return nil
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, p repository.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.IsPublic != nil {
		u.IsPublic = *p.IsPublic
	}
	if p.Links != nil {
		u.Links = *p.Links
	}
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetUsername(_ context.Context, id, username, usernameLower string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Username = username
	u.UsernameLower = usernameLower
	f.users[id] = u
	return nil
}

// addUser seeds an account directly, bypassing the upsert path.
func (f *fakeUserRepo) addUser(u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

type fakeUsernameRepo struct {
	mu           sync.Mutex
	reservations map[string]string

	claimErr error
}

func newFakeUsernameRepo() *fakeUsernameRepo {
	return &fakeUsernameRepo{reservations: make(map[string]string)}
}

var _ repository.UsernameRepository = (*fakeUsernameRepo)(nil)

func (f *fakeUsernameRepo) Claim(_ context.Context, usernameLower, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return f.claimErr
	}
	if holder, ok := f.reservations[usernameLower]; ok && holder != uid {
		return apperror.Conflict("username is already taken")
	}
	f.reservations[usernameLower] = uid
	return nil
}

func (f *fakeUsernameRepo) Release(_ context.Context, usernameLower string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reservations, usernameLower)
	return nil
}

func (f *fakeUsernameRepo) Resolve(_ context.Context, usernameLower string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.reservations[usernameLower]
	if !ok {
		return "", apperror.NotFound("username", usernameLower)
	}
	return uid, nil
}

// newTestLogger returns a logger that swallows output so service log lines
// don't pollute test output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
