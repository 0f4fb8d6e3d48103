package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yourorg/vecino/internal/domain"
)

// messageResponse is the envelope for plain-message success replies.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the envelope for every failure reply. Clients key off
// "error" for failures and "message" for successes.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeError maps a classified error to its HTTP status. Unclassified errors
// are 500 with the raw message passed through.
func writeError(w http.ResponseWriter, err error) {
	kind, ok := domain.KindOf(err)
	if !ok {
		writeErrorMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidToken:
		status = http.StatusForbidden
	}
	writeErrorMessage(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return false
	}
	return true
}
