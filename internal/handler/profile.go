package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codesplit/internal/apperror"
	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/model"
	"github.com/sakif/codesplit/internal/service"
)

// ProfileHandler covers profile editing, the username registry and public
// profile pages.
type ProfileHandler struct {
	users     *service.UserService
	community *service.CommunityService
	logger    *slog.Logger
}

func NewProfileHandler(users *service.UserService, community *service.CommunityService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, community: community, logger: logger}
}

type updateProfileRequest struct {
	DisplayName *string             `json:"displayName"`
	Bio         *string             `json:"bio"`
	IsPublic    *bool               `json:"isPublic"`
	Links       *model.ProfileLinks `json:"links"`
}

// HandleUpdate patches the caller's profile. Absent fields stay.
//
// PUT /api/profile (auth)
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := h.users.UpdateProfile(r.Context(), userID, service.ProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		IsPublic:    req.IsPublic,
		Links:       req.Links,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type claimUsernameRequest struct {
	Username string `json:"username"`
}

// HandleClaimUsername claims (or changes) the caller's handle.
//
// PUT /api/profile/username (auth). 409 when the handle is taken.
func (h *ProfileHandler) HandleClaimUsername(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req claimUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.ClaimUsername(r.Context(), userID, req.Username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": req.Username})
}

// HandleUsernameAvailable checks whether a handle could be claimed.
//
// GET /api/profile/username/available?username=x — public so the claim
// dialog can check as the user types, before they're committed.
func (h *ProfileHandler) HandleUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, apperror.ValidationFailed("username", "username query parameter is required"))
		return
	}

	available, err := h.users.CheckAvailability(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// publicProfile is the shape served for /api/users/{username}: the profile
// plus the owner's published work. Email stays private.
type publicProfile struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"displayName"`
	PhotoURL    string             `json:"photoURL"`
	Bio         string             `json:"bio"`
	Links       model.ProfileLinks `json:"links"`
	Username    string             `json:"username"`
	Projects    interface{}        `json:"projects"`
}

// HandlePublicProfile serves a profile page by handle.
//
// GET /api/users/{username}. The reservation table resolves the handle;
// profiles marked private 404 just like unknown handles, so the route
// doesn't reveal which handles exist.
func (h *ProfileHandler) HandlePublicProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	userID, err := h.users.ResolveUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !user.IsPublic {
		writeError(w, apperror.NotFound("user", username))
		return
	}

	projects, err := h.community.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publicProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Bio:         user.Bio,
		Links:       user.Links,
		Username:    user.Username,
		Projects:    projects,
	})
}
