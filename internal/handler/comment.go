package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// CommentHandler exposes the comment HTTP surface.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentHandler{
		comments: comments,
		logger:   logger,
	}
}

// List handles GET /api/comments/allComments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

type commentsByPostRequest struct {
	PostID string `json:"postId"`
}

// ListByPost handles GET /api/comments/getCommentsPost. The post id travels
// in the body; historical client behavior kept for compatibility.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	var req commentsByPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), req.PostID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// Create handles POST /api/comments/insertComment/{userID}
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.comments.Create(r.Context(), chi.URLParam(r, "userID"), req.PostID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// Update handles PUT /api/comments/updateComment/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), chi.URLParam(r, "commentID"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/deleteComment/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "commentID")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Comentario eliminado correctamente")
}
