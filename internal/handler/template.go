package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/service"
	"github.com/sakif/codesplit/internal/template"
)

// TemplateHandler serves the official starter templates and forks them
// into user projects.
type TemplateHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewTemplateHandler(projects *service.ProjectService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{projects: projects, logger: logger}
}

// HandleList returns every official template.
//
// GET /api/templates
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, template.List())
}

// HandleGet returns one template by id.
//
// GET /api/templates/{id}
func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tpl, err := template.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// HandleFork creates a new private project from a template.
//
// POST /api/templates/{id}/fork (auth)
func (h *TemplateHandler) HandleFork(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := h.projects.ForkTemplate(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
