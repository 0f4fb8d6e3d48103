package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/vecino/internal/service"
)

// UserHandler exposes the personal-account HTTP surface.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterUserInput
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// loginRequest is shared by the user and business login endpoints. The
// password is untyped because clients send it as a string or a number.
type loginRequest struct {
	Email    string `json:"email"`
	Password any    `json:"password"`
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /api/users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/users/updateUser/{userID}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
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

// changePasswordRequest carries the password pair. Both are untyped for the
// same coercion reason as login.
type changePasswordRequest struct {
	CurrentPassword any `json:"currentPassword"`
	NewPassword     any `json:"newPassword"`
}

// ChangePassword handles PUT /api/users/changePassword/{userID}
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.ChangePassword(r.Context(), chi.URLParam(r, "userID"), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Contraseña actualizada correctamente")
}

// Delete handles DELETE /api/users/delete/{userID}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Usuario eliminado correctamente")
}
