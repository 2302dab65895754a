package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
)

// RespondJSON writes payload as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// RespondError writes the standard {"message": ...} error body.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondAppError maps err to its status code. Server-side failures are
// logged under an incident reference that is the only detail returned.
func RespondAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status != http.StatusInternalServerError {
		RespondError(w, status, apperrors.PublicMessage(err))
		return
	}

	ref := uuid.NewString()
	slog.ErrorContext(r.Context(), "request failed",
		"ref", ref, "method", r.Method, "path", r.URL.Path, "err", err)
	RespondError(w, status, "internal error (ref "+ref+")")
}
