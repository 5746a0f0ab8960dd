package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// StatusFor maps domain errors onto HTTP status codes and user-facing messages.
// ok is false for unexpected errors, which callers log and answer with 500.
func StatusFor(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Nicht gefunden", true
	case errors.Is(err, domain.ErrNotFoundOrUnauthorized):
		return http.StatusNotFound, "Bewertung nicht gefunden", true
	case errors.Is(err, domain.ErrDuplicateReview):
		return http.StatusConflict, "Du hast diesen Laden bereits bewertet", true
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest, "Ungültiger Filter", true
	case errors.Is(err, domain.ErrInvalidReview):
		return http.StatusBadRequest, "Ungültige Bewertung", true
	}
	return http.StatusInternalServerError, "", false
}

// WriteError writes the mapped status. Unexpected errors are logged with context and answered with fallback.
func WriteError(logger *log.Logger, w http.ResponseWriter, err error, fallback string, logContext string) {
	status, message, ok := StatusFor(err)
	if !ok {
		if logger != nil {
			logger.Printf("%s: %v", logContext, err)
		}
		message = fallback
	}
	WriteJSON(logger, w, status, map[string]string{"error": message})
}
