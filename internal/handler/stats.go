package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/domain"
	"github.com/lifelog/lifelog/internal/store"
)

// StatsHandler serves the remaining read-only aggregation endpoints. Each
// query scopes to the caller's rows directly, the same restriction the
// engine applies.
type StatsHandler struct {
	db     *store.DB
	logger *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(db *store.DB, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{db: db, logger: logger}
}

// FinanceSummary handles GET /transactions/summary.
func (h *StatsHandler) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	start, end := dateRangeParams(r)

	summary, err := domain.GetFinanceSummary(r.Context(), h.db, identity, start, end)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, summary)
}

// HabitStreak handles GET /habits/{id}/streak.
func (h *StatsHandler) HabitStreak(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID

	streak, err := domain.GetHabitStreak(r.Context(), h.db, identity, chi.URLParam(r, "id"), time.Now().UTC())
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, streak)
}

// WellnessSummary handles GET /wellness/summary.
func (h *StatsHandler) WellnessSummary(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	start, end := dateRangeParams(r)

	summary, err := domain.GetWellnessSummary(r.Context(), h.db, identity, start, end)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, summary)
}

// dateRangeParams parses optional startDate/endDate query parameters.
// Unparseable values are ignored, matching list behavior.
func dateRangeParams(r *http.Request) (*time.Time, *time.Time) {
	parse := func(s string) *time.Time {
		if s == "" {
			return nil
		}
		if t, err := time.Parse(dateLayout, s); err == nil {
			return &t
		}
		return nil
	}
	q := r.URL.Query()
	return parse(q.Get("startDate")), parse(q.Get("endDate"))
}
