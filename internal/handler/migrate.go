package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/service"
)

// MigrationHandler imports guest work shipped up by the browser after the
// first sign-in.
type MigrationHandler struct {
	migration *service.MigrationService
	logger    *slog.Logger
}

func NewMigrationHandler(migration *service.MigrationService, logger *slog.Logger) *MigrationHandler {
	return &MigrationHandler{migration: migration, logger: logger}
}

type migrateRequest struct {
	Projects []model.LocalProject `json:"projects"`
}

// HandleMigrate imports a batch of local projects for the caller.
//
// POST /api/migrate (auth)
// Responds {"migratedCount": n, "newIdMap": {"local-id": "cloud-id"}}; the
// client uses the map to rewrite its local references, then clears storage.
func (h *MigrationHandler) HandleMigrate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req migrateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.migration.MigrateLocalProjects(r.Context(), userID, req.Projects)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
