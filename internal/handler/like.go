package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// LikeHandler exposes the like HTTP surface.
type LikeHandler struct {
	likes  *service.LikeService
	logger *slog.Logger
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likes *service.LikeService, logger *slog.Logger) *LikeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &LikeHandler{
		likes:  likes,
		logger: logger,
	}
}

type likeRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

type likeResponse struct {
	Likes int `json:"likes"`
}

// Toggle handles POST /api/likes/{postID}. The body's action field selects
// like or unlike.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	postID := chi.URLParam(r, "postID")

	var count int
	var err error
	switch req.Action {
	case "like":
		count, err = h.likes.Like(r.Context(), req.UserID, postID)
	case "unlike":
		count, err = h.likes.Unlike(r.Context(), req.UserID, postID)
	default:
		writeErrorMessage(w, http.StatusBadRequest, "Acción inválida")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Likes: count})
}

// Count handles GET /api/likes/{postID}
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.likes.Count(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Likes: count})
}
