package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/panelapi"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("server: failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, panelapi.ErrorResponse{Error: code, Description: description})
}

// writeStoreError maps content and account errors onto statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case perrors.Is(err, perrors.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case perrors.Is(err, perrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Err(err).Msg("server: request failed")
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// decodeBody reads a JSON body into v, answering 400 itself when it cannot.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}
	return true
}
