// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lifelog/lifelog/internal/middleware"
	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

// Envelope is the uniform wrapper applied to every response. Exactly one of
// Data or Error is meaningful per response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta carries pagination metadata on list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// writeJSON writes a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already sent; nothing useful to do.
		_ = err
	}
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// writeMessage writes a success envelope with a message and no payload.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message})
}

// writePage writes a success envelope with pagination metadata.
func writePage(w http.ResponseWriter, data any, meta Meta) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Meta: &meta})
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}

// writeEngineError maps engine and store errors onto the error taxonomy.
// Unrecognized errors are logged and surface as a bare 500; raw store errors
// never reach the caller.
func writeEngineError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, resource.ErrNotFound), errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, resource.ErrConflict):
		writeError(w, http.StatusConflict, "record already exists")
	case errors.Is(err, resource.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("internal_error",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
