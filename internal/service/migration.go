package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/repository"
	"github.com/sakif/codesplit/internal/template"
)

// MigrationResult reports what happened to a batch of guest projects.
// IDMap lets the client rewrite its local references to the new cloud IDs.
type MigrationResult struct {
	MigratedCount int               `json:"migratedCount"`
	IDMap         map[string]string `json:"newIdMap"`
}

// MigrationService imports guest work into an authenticated account. The
// browser ships its locally stored projects after the first sign-in; each
// one becomes a private cloud project owned by the new account.
type MigrationService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewMigrationService(projects repository.ProjectRepository, logger *slog.Logger) *MigrationService {
	return &MigrationService{projects: projects, logger: logger}
}

// MigrateLocalProjects imports the batch for ownerID.
//
// Per-item failures are logged and skipped so one bad entry never sinks the
// rest of the batch. Entries holding nothing but the untouched starter
// document are dropped: a guest who opened the editor and left has no work
// worth keeping.
func (s *MigrationService) MigrateLocalProjects(ctx context.Context, ownerID string, locals []model.LocalProject) (MigrationResult, error) {
	result := MigrationResult{IDMap: make(map[string]string)}

	for _, local := range locals {
		if isUntouchedStarter(local) {
			s.logger.Debug("skipping untouched starter project",
				slog.String("localID", local.ID),
			)
			continue
		}
		if err := validateDocuments(SaveInput{
			Title: local.Title, HTML: local.HTML, CSS: local.CSS, JS: local.JS,
		}); err != nil {
			s.logger.Warn("skipping invalid local project",
				slog.String("localID", local.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		p := &model.Project{
			OwnerID:     ownerID,
			Title:       local.Title,
			HTML:        local.HTML,
			CSS:         local.CSS,
			JS:          local.JS,
			Description: local.Description,
			Tags:        local.Tags,
		}
		if err := s.projects.Create(ctx, p); err != nil {
			s.logger.Warn("failed to migrate local project",
				slog.String("localID", local.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		result.IDMap[local.ID] = p.ID
		result.MigratedCount++
		s.logger.Info("migrated local project",
			slog.String("localID", local.ID),
			slog.String("cloudID", p.ID),
		)
	}

	return result, nil
}

// isUntouchedStarter reports whether the guest never edited past the
// editor's starting document: starter html, empty css and js.
func isUntouchedStarter(local model.LocalProject) bool {
	return strings.TrimSpace(local.HTML) == strings.TrimSpace(template.StarterHTML) &&
		strings.TrimSpace(local.CSS) == "" &&
		strings.TrimSpace(local.JS) == ""
}
