package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// UsernameHandler exposes the handle-registry HTTP surface.
type UsernameHandler struct {
	identities *service.IdentityService
	logger     *slog.Logger
}

// NewUsernameHandler creates a new username handler
func NewUsernameHandler(identities *service.IdentityService, logger *slog.Logger) *UsernameHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &UsernameHandler{
		identities: identities,
		logger:     logger,
	}
}

// Get handles GET /api/username/{usernameID}
func (h *UsernameHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identities.FindByID(r.Context(), chi.URLParam(r, "usernameID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

// Update handles PUT /api/username/updateUsername/{usernameID}. Renaming to
// the handle the identity already holds succeeds without a write.
func (h *UsernameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUsernameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	identity, err := h.identities.Rename(r.Context(), chi.URLParam(r, "usernameID"), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}
