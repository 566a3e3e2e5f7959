package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/domain"
	"github.com/lifelog/lifelog/internal/store"
)

// WorkoutHandler serves the bespoke workout endpoints that sit beside the
// generic CRUD surface: the exercise sub-collection and the stats
// aggregation.
type WorkoutHandler struct {
	db     *store.DB
	logger *slog.Logger
}

// NewWorkoutHandler creates a WorkoutHandler.
func NewWorkoutHandler(db *store.DB, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{db: db, logger: logger}
}

// Register mounts the bespoke workout routes. Called inside the generic
// workout resource route, so paths are relative to /workouts.
func (h *WorkoutHandler) Register(r chi.Router) {
	r.Get("/stats", h.Stats)
	r.Post("/{id}/exercises", h.CreateExercise)
	r.Patch("/{id}/exercises/{exerciseID}", h.UpdateExercise)
	r.Delete("/{id}/exercises/{exerciseID}", h.DeleteExercise)
}

// Stats handles GET /workouts/stats.
func (h *WorkoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	start, end := dateRangeParams(r)

	stats, err := domain.GetWorkoutStats(r.Context(), h.db, identity, start, end)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}

// CreateExercise handles POST /workouts/{id}/exercises.
func (h *WorkoutHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var in domain.ExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	exercise, err := domain.CreateWorkoutExercise(r.Context(), h.db, identity, chi.URLParam(r, "id"), in)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, exercise)
}

// UpdateExercise handles PATCH /workouts/{id}/exercises/{exerciseID}.
func (h *WorkoutHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	var patch domain.ExercisePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	identity := auth.MustFromContext(r.Context()).UserID
	exercise, err := domain.UpdateWorkoutExercise(
		r.Context(), h.db, identity,
		chi.URLParam(r, "id"), chi.URLParam(r, "exerciseID"),
		patch,
	)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, exercise)
}

// DeleteExercise handles DELETE /workouts/{id}/exercises/{exerciseID}.
func (h *WorkoutHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context()).UserID
	err := domain.DeleteWorkoutExercise(
		r.Context(), h.db, identity,
		chi.URLParam(r, "id"), chi.URLParam(r, "exerciseID"),
	)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "deleted")
}
