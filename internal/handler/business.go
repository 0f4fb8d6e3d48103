package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// BusinessHandler exposes the business-account HTTP surface.
type BusinessHandler struct {
	businesses *service.BusinessService
	logger     *slog.Logger
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businesses *service.BusinessService, logger *slog.Logger) *BusinessHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &BusinessHandler{
		businesses: businesses,
		logger:     logger,
	}
}

// Register handles POST /api/businesses/register
func (h *BusinessHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterBusinessInput
	if !decodeBody(w, r, &req) {
		return
	}

	business, err := h.businesses.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, business)
}

// Login handles POST /api/businesses/login
func (h *BusinessHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.businesses.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /api/businesses/{businessID}
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	business, err := h.businesses.Get(r.Context(), chi.URLParam(r, "businessID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, business)
}

// Edit handles PUT /api/businesses/edit/{businessID}
func (h *BusinessHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

// ChangePassword handles PUT /api/businesses/changePassword/{businessID}
func (h *BusinessHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.businesses.ChangePassword(r.Context(), chi.URLParam(r, "businessID"), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Contraseña actualizada correctamente")
}

// Delete handles DELETE /api/businesses/delete/{businessID}
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.businesses.Delete(r.Context(), chi.URLParam(r, "businessID")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Negocio eliminado correctamente")
}

// Rating handles GET /api/businesses/rating/{businessID}
func (h *BusinessHandler) Rating(w http.ResponseWriter, r *http.Request) {
	summary, err := h.businesses.Rating(r.Context(), chi.URLParam(r, "businessID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
