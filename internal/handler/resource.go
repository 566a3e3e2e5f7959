package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/resource"
)

// dateLayout is the calendar-date format used in by-date URLs.
const dateLayout = "2006-01-02"

// Resource is the generic HTTP facade over one engine instantiation. Every
// tracker entity is served by the same handler code; only the engine's
// descriptor differs.
type Resource[T any] struct {
	engine *resource.Engine[T]
	logger *slog.Logger
}

// NewResource creates a Resource handler for one entity.
func NewResource[T any](engine *resource.Engine[T], logger *slog.Logger) *Resource[T] {
	return &Resource[T]{engine: engine, logger: logger}
}

// Register mounts the entity's routes on r. By-date routes are only mounted
// for entities with a daily unique key.
func (h *Resource[T]) Register(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	if h.engine.Descriptor().DailyUnique {
		r.Get("/by-date/{date}", h.GetByDate)
		r.Put("/by-date/{date}", h.UpsertByDate)
	}
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /.
func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	record, err := h.engine.Create(r.Context(), identity, payload)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, record)
}

// List handles GET /.
func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	params := resource.ParseParams(r.URL.Query())

	identity := auth.MustFromContext(r.Context()).UserID
	page, err := h.engine.List(r.Context(), identity, params)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writePage(w, page.Items, Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /{id}.
func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	record, err := h.engine.GetByID(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// GetByDate handles GET /by-date/{date}.
func (h *Resource[T]) GetByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	record, err := h.engine.GetByDate(r.Context(), identity, date)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// Update handles PATCH /{id}.
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePayload(w, r)
	if !ok {
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	record, err := h.engine.Update(r.Context(), identity, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// Delete handles DELETE /{id}.
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	if err := h.engine.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "deleted")
}

// UpsertByDate handles PUT /by-date/{date}.
func (h *Resource[T]) UpsertByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r)
	if !ok {
		return
	}
	payload, pok := decodePayload(w, r)
	if !pok {
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	record, err := h.engine.UpsertByDate(r.Context(), identity, date, payload)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// decodePayload decodes a JSON object body, writing a 422 on failure.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return nil, false
	}
	return payload, true
}

// parseDateParam parses the {date} URL segment, writing a 422 on failure.
func parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
