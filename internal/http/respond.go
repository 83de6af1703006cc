package http

import (
	"encoding/json"
	"errors"
	"net/http"

	applog "zenledger/internal/log"
)

var (
	errInvalidYear  = errors.New("invalid year parameter")
	errInvalidMonth = errors.New("invalid month parameter: must be 1-12")
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Component(applog.ComponentHTTP).Error("Failed encoding response", applog.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
