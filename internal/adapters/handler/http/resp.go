package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pollpulse/api/internal/core/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// treated as an internal failure and logged with its cause; the caller only
// sees a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidPollID),
		errors.Is(err, domain.ErrInvalidPollType),
		errors.Is(err, domain.ErrInvalidOption):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotPollOwner):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrPollNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrPollClosed),
		errors.Is(err, domain.ErrPollAlreadyClosed),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUpload):
		writeMessage(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}
