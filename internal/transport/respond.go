package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/board"
	"github.com/mlevin/applytrack/internal/domain/user"
	"github.com/mlevin/applytrack/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps domain errors onto HTTP codes. Not-found covers
// records owned by other users as well, so foreign ids are never
// distinguishable from missing ones. Store detail stays out of responses.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest, "Email and password are required"
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, application.ErrInvalidInput):
		return http.StatusBadRequest, "Missing required fields"
	case errors.Is(err, application.ErrUnknownStatus):
		return http.StatusBadRequest, "Unknown application status"
	case errors.Is(err, board.ErrIndexOutOfRange):
		return http.StatusBadRequest, "Target index out of range"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "Application not found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "Concurrent modification, retry the request"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
