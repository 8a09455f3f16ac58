// Package service contains the business logic layer: validation, ownership
// checks, and orchestration over the repository interfaces. Services know
// nothing about HTTP and nothing about SQL — handlers translate errors to
// status codes, repositories translate operations to queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
	"github.com/sakif/codesplit/internal/template"
)

// Document size caps. Generous: a pen is text, not an asset store.
const (
	MaxTitleLength    = 200
	MaxDocumentLength = 500000 // ~500KB per html/css/js document
)

// SaveInput is what the editor sends on every save. An empty ID means
// "create"; a present ID means "patch the content of that project".
type SaveInput struct {
	ID    string
	Title string
	HTML  string
	CSS   string
	JS    string
}

// ProjectService handles project CRUD, duplication and template forking.
type ProjectService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewProjectService(projects repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// Save creates a new project or patches an existing one.
//
// The two paths write different field sets on purpose: a create writes the
// full record (owner, private visibility, empty metadata), while an update
// patches only title/html/css/js so visibility, tags, counters and the
// publish date survive every editor save.
func (s *ProjectService) Save(ctx context.Context, ownerID string, input SaveInput) (string, error) {
	if ownerID == "" {
		return "", apperror.ValidationFailed("ownerId", "owner is required")
	}
	if err := validateDocuments(input); err != nil {
		return "", err
	}

	if input.ID != "" {
		existing, err := s.projects.GetByID(ctx, input.ID)
		if err != nil {
			return "", err
		}
		if existing.OwnerID != ownerID {
			return "", apperror.Forbidden("you don't have permission to modify this project")
		}
		if err := s.projects.UpdateContent(ctx, input.ID, input.Title, input.HTML, input.CSS, input.JS); err != nil {
			return "", fmt.Errorf("saving project: %w", err)
		}
		return input.ID, nil
	}

	p := &model.Project{
		OwnerID: ownerID,
		Title:   input.Title,
		HTML:    input.HTML,
		CSS:     input.CSS,
		JS:      input.JS,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		s.logger.Error("failed to create project",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		slog.String("id", p.ID),
		slog.String("ownerID", ownerID),
	)
	return p.ID, nil
}

func validateDocuments(input SaveInput) error {
	if len(input.Title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	for field, doc := range map[string]string{
		"html": input.HTML, "css": input.CSS, "js": input.JS,
	} {
		if len(doc) > MaxDocumentLength {
			return apperror.ValidationFailed(field,
				fmt.Sprintf("%s must be %d characters or less", field, MaxDocumentLength))
		}
	}
	return nil
}

// GetByID returns a project or apperror.ErrNotFound.
// Reads are not ownership-gated: the editor and community views both load
// projects by id, matching the original behavior.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "project ID is required")
	}
	return s.projects.GetByID(ctx, id)
}

// ListByOwner returns the user's projects, most recently updated first.
// The sort happens here: the store's owner query spends its one index on
// the owner lookup.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]model.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list projects",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// ListFeatured returns the owner's featured projects, updatedAt descending.
func (s *ProjectService) ListFeatured(ctx context.Context, ownerID string) ([]model.Project, error) {
	all, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	featured := make([]model.Project, 0, len(all))
	for _, p := range all {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// Rename changes only the title.
func (s *ProjectService) Rename(ctx context.Context, id, ownerID, title string) error {
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if err := s.requireOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return s.projects.Rename(ctx, id, title)
}

// Delete removes the project permanently, like records and all.
func (s *ProjectService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.requireOwner(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", slog.String("id", id))
	return nil
}

// SetVisibility flips the public flag directly (the dashboard toggle).
// Publishing with metadata goes through CommunityService instead.
func (s *ProjectService) SetVisibility(ctx context.Context, id, ownerID string, isPublic bool) error {
	if err := s.requireOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return s.projects.SetVisibility(ctx, id, isPublic)
}

// SetFeatured marks the project for the owner's public profile rail.
func (s *ProjectService) SetFeatured(ctx context.Context, id, ownerID string, isFeatured bool) error {
	if err := s.requireOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return s.projects.SetFeatured(ctx, id, isFeatured)
}

// Duplicate copies a project into a new private one owned by ownerID.
// The title gets a "Copy of " prefix; an untitled source falls back to
// "Copy of Untitled Project".
func (s *ProjectService) Duplicate(ctx context.Context, id, ownerID string) (string, error) {
	original, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	title := original.Title
	if title == "" {
		title = "Untitled Project"
	}

	copy := &model.Project{
		OwnerID: ownerID,
		Title:   "Copy of " + title,
		HTML:    original.HTML,
		CSS:     original.CSS,
		JS:      original.JS,
	}
	if err := s.projects.Create(ctx, copy); err != nil {
		return "", fmt.Errorf("duplicating project: %w", err)
	}

	s.logger.Info("project duplicated",
		slog.String("sourceID", id),
		slog.String("newID", copy.ID),
	)
	return copy.ID, nil
}

// ForkTemplate creates a new project from an official template.
// Unknown template IDs surface as NotFound.
func (s *ProjectService) ForkTemplate(ctx context.Context, templateID, ownerID string) (string, error) {
	tpl, err := template.Get(templateID)
	if err != nil {
		return "", err
	}

	p := &model.Project{
		OwnerID: ownerID,
		Title:   tpl.Title,
		HTML:    tpl.HTML,
		CSS:     tpl.CSS,
		JS:      tpl.JS,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return "", fmt.Errorf("forking template %s: %w", templateID, err)
	}

	s.logger.Info("template forked",
		slog.String("templateID", templateID),
		slog.String("projectID", p.ID),
	)
	return p.ID, nil
}

// requireOwner loads the project and enforces the single-owner invariant.
func (s *ProjectService) requireOwner(ctx context.Context, id, ownerID string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return apperror.Forbidden("you don't have permission to modify this project")
	}
	return nil
}
