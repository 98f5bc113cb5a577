package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/aradsms/users_phonebook/internal/users_service/domain"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error string `json:"error"`
}

// respondWithJSON writes payload with status code. Encoding failures happen
// after the header is sent and can only be logged.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("Failed to write JSON response", "status", code, "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

// mapDomainErrorToHTTPStatus converts application errors to HTTP status codes.
func mapDomainErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError writes err with its mapped status. Internal errors are
// logged and their message is not exposed.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := mapDomainErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "error", err,
			"request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path)
		respondWithError(w, code, "internal server error")
		return
	}
	respondWithError(w, code, err.Error())
}
