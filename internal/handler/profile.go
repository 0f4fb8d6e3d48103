package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// ProfileHandler exposes the public profile HTTP surface.
type ProfileHandler struct {
	users      *service.UserService
	businesses *service.BusinessService
	logger     *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users *service.UserService, businesses *service.BusinessService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileHandler{
		users:      users,
		businesses: businesses,
		logger:     logger,
	}
}

// User handles GET /api/profile/{userID}
func (h *ProfileHandler) User(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Profile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Business handles GET /api/profile/business/{businessID}
func (h *ProfileHandler) Business(w http.ResponseWriter, r *http.Request) {
	profile, err := h.businesses.Profile(r.Context(), chi.URLParam(r, "businessID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateUser handles PUT /api/profile/{userID}. Same typed-field filtering
// as the account edit endpoint; a currentPassword/newPassword pair routes
// through the single password-change policy.
func (h *ProfileHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req service.EditProfileInput
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.EditProfile(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateBusiness handles PUT /api/profile/business/{businessID}
func (h *ProfileHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req service.EditBusinessInput
	if !decodeBody(w, r, &req) {
		return
	}

	business, err := h.businesses.Edit(r.Context(), chi.URLParam(r, "businessID"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, business)
}
