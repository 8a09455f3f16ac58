package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/preview"
	"github.com/sakif/codesplit/internal/service"
)

// ProjectHandler exposes project CRUD, duplication and the preview document.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

type saveProjectRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
	CSS   string `json:"css"`
	JS    string `json:"js"`
}

// HandleSave creates or updates a project.
//
// POST /api/projects (auth). An id in the body means update; without one a
// new private project is created. Responds {"id": "..."} either way.
func (h *ProjectHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req saveProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.projects.Save(r.Context(), userID, service.SaveInput{
		ID: req.ID, Title: req.Title, HTML: req.HTML, CSS: req.CSS, JS: req.JS,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]string{"id": id})
}

// HandleGet returns one project.
//
// GET /api/projects/{id} — no auth gate: shared editor links and community
// cards load projects directly by id.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleList returns the caller's projects, newest edit first.
//
// GET /api/projects (auth), ?featured=1 narrows to the featured set.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var err error
	var projects interface{}
	if r.URL.Query().Get("featured") == "1" {
		projects, err = h.projects.ListFeatured(r.Context(), userID)
	} else {
		projects, err = h.projects.ListByOwner(r.Context(), userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type renameRequest struct {
	Title string `json:"title"`
}

// HandleRename updates just the title.
//
// PUT /api/projects/{id}/rename (auth, owner only)
func (h *ProjectHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.Rename(r.Context(), chi.URLParam(r, "id"), userID, req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "renamed"})
}

// HandleDuplicate copies a project into the caller's account.
//
// POST /api/projects/{id}/duplicate (auth)
func (h *ProjectHandler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	id, err := h.projects.Duplicate(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type visibilityRequest struct {
	IsPublic bool `json:"isPublic"`
}

// HandleVisibility flips the public flag.
//
// PUT /api/projects/{id}/visibility (auth, owner only)
func (h *ProjectHandler) HandleVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.SetVisibility(r.Context(), chi.URLParam(r, "id"), userID, req.IsPublic); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isPublic": req.IsPublic})
}

type featuredRequest struct {
	IsFeatured bool `json:"isFeatured"`
}

// HandleFeatured marks or unmarks a project for the profile rail.
//
// PUT /api/projects/{id}/featured (auth, owner only)
func (h *ProjectHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req featuredRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.SetFeatured(r.Context(), chi.URLParam(r, "id"), userID, req.IsFeatured); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFeatured": req.IsFeatured})
}

// HandleDelete removes a project.
//
// DELETE /api/projects/{id} (auth, owner only)
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// HandlePreview serves the assembled HTML document for the client's
// sandboxed iframe.
//
// GET /api/projects/{id}/preview
func (h *ProjectHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	doc := preview.Assemble(p.Title, p.HTML, p.CSS, p.JS)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The document is user-authored code; make sure it only ever runs inside
	// the client's sandboxed frame.
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("failed to write preview", slog.String("error", err.Error()))
	}
}
