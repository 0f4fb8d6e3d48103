package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// ReviewHandler exposes the review HTTP surface.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviews: reviews,
		logger:  logger,
	}
}

// List handles GET /api/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

type reviewsByBusinessRequest struct {
	BusinessID string `json:"businessId"`
}

// ListByBusiness handles GET /api/reviews/getReviews. The business id
// travels in the body; historical client behavior kept for compatibility.
func (h *ReviewHandler) ListByBusiness(w http.ResponseWriter, r *http.Request) {
	var req reviewsByBusinessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reviews, err := h.reviews.ListByBusiness(r.Context(), req.BusinessID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

type insertReviewRequest struct {
	BusinessID string `json:"businessId"`
	Content    string `json:"content"`
}

// InsertReview handles POST /api/reviews/insertReview/{userID}
func (h *ReviewHandler) InsertReview(w http.ResponseWriter, r *http.Request) {
	var req insertReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.reviews.WriteContent(r.Context(), chi.URLParam(r, "userID"), req.BusinessID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

type insertRatingRequest struct {
	BusinessID string `json:"businessId"`
	Rating     int    `json:"rating"`
}

// InsertRating handles POST /api/reviews/insertRating/{userID}
func (h *ReviewHandler) InsertRating(w http.ResponseWriter, r *http.Request) {
	var req insertRatingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.reviews.WriteRating(r.Context(), chi.URLParam(r, "userID"), req.BusinessID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// Delete handles DELETE /api/reviews/delete/{userID}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteByUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Reseña eliminada correctamente")
}
