package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/security/middleware"
	"github.com/yourorg/vecino/internal/service"
)

// PostHandler exposes the post HTTP surface.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostHandler{
		posts:  posts,
		logger: logger,
	}
}

// List handles GET /api/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/posts/{postID}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ListByBusiness handles GET /api/posts/business/{businessID}
func (h *PostHandler) ListByBusiness(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByBusiness(r.Context(), chi.URLParam(r, "businessID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/posts. The publishing business is taken from the
// bearer token, not the body.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Token no proporcionado")
		return
	}

	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), claims.ID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// Delete handles DELETE /api/posts/{postID}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), chi.URLParam(r, "postID")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Post eliminado correctamente")
}
