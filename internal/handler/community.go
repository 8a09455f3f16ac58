package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/repository"
	"github.com/sakif/codesplit/internal/service"
)

// CommunityHandler exposes the public feed: browsing, publishing, likes
// and view counts.
type CommunityHandler struct {
	community *service.CommunityService
	logger    *slog.Logger
}

func NewCommunityHandler(community *service.CommunityService, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{community: community, logger: logger}
}

// HandleList returns the community feed.
//
// GET /api/community?filter=newest|trending (newest when omitted)
func (h *CommunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = service.FilterNewest
	}

	feed, err := h.community.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// HandleListByUser returns a user's published projects.
//
// GET /api/community/user/{userID}
func (h *CommunityHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	feed, err := h.community.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

type publishRequest struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HandlePublish puts a project on the feed.
//
// POST /api/community/{id}/publish (auth, owner only)
func (h *CommunityHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := h.community.Publish(r.Context(), chi.URLParam(r, "id"), userID, service.PublishInput{
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "published"})
}

type updatePublishedRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

// HandleUpdatePublished patches published metadata; absent fields stay.
//
// PUT /api/community/{id} (auth, owner only)
func (h *CommunityHandler) HandleUpdatePublished(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req updatePublishedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := h.community.UpdatePublished(r.Context(), chi.URLParam(r, "id"), userID, repository.PublishedFields{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// HandleUnpublish pulls a project off the feed.
//
// POST /api/community/{id}/unpublish (auth, owner only)
func (h *CommunityHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.community.Unpublish(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "unpublished"})
}

// HandleToggleLike flips the caller's like.
//
// POST /api/community/{id}/like (auth)
// Responds {"liked": bool, "likeCount": n}.
func (h *CommunityHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	result, err := h.community.ToggleLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleHasLiked reports the caller's like state for a project.
//
// GET /api/community/{id}/liked (auth)
func (h *CommunityHandler) HandleHasLiked(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	liked, err := h.community.HasLiked(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// HandleView bumps the view counter. Anonymous, fire-and-forget: the client
// posts it when a card opens and ignores the answer.
//
// POST /api/community/{id}/view
func (h *CommunityHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.community.IncrementViews(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
