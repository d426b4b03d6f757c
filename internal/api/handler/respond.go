package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondOK(w http.ResponseWriter, status int, message string, data any) {
	respond(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError maps domain errors onto the envelope: field-keyed
// validation failures become 400, stale references 404, anything else
// a generic 500 without leaking internals.
func respondError(w http.ResponseWriter, err error) {
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond(w, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: vErr.Fields})
	case errors.Is(err, core.ErrNotFound):
		respond(w, http.StatusNotFound, envelope{Message: "Resource not found", Errors: map[string]string{}})
	default:
		log.Error().Err(err).Msg("Request failed")
		respond(w, http.StatusInternalServerError, envelope{Message: "An error occurred", Errors: map[string]string{}})
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respond(w, http.StatusBadRequest, envelope{Message: message, Errors: map[string]string{}})
}
