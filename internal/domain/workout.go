package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lifelog/lifelog/internal/model"
	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

const exerciseColumns = `id, workout_id, name, sets, reps, weight_kg, position, created_at, updated_at`

// AttachWorkoutExercises loads the exercises for a batch of workouts in one
// query and attaches them to their parents.
func AttachWorkoutExercises(ctx context.Context, q store.Querier, workouts []*model.Workout) error {
	ids := make([]string, len(workouts))
	byID := make(map[string]*model.Workout, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
		byID[w.ID] = w
		w.Exercises = []*model.WorkoutExercise{}
	}

	query := `
		SELECT ` + exerciseColumns + `
		FROM workout_exercises
		WHERE workout_id = ANY($1)
		ORDER BY workout_id, position, id
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load workout exercises: %w", err)
	}
	exercises, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.WorkoutExercise])
	if err != nil {
		return fmt.Errorf("scan workout exercises: %w", err)
	}

	for _, ex := range exercises {
		if parent, ok := byID[ex.WorkoutID]; ok {
			parent.Exercises = append(parent.Exercises, ex)
		}
	}
	return nil
}

// ExerciseInput carries the writable fields of a workout exercise.
type ExerciseInput struct {
	Name     string   `json:"name"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	WeightKg *float64 `json:"weight_kg"`
	Position int      `json:"position"`
}

// CreateWorkoutExercise adds an exercise to the user's workout. The parent's
// ownership is verified in the same statement: no parent row for (workoutID,
// userID) means nothing is inserted and not-found is reported.
func CreateWorkoutExercise(ctx context.Context, q store.Querier, userID, workoutID string, in ExerciseInput) (*model.WorkoutExercise, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: missing required field %q", resource.ErrValidation, "name")
	}

	query := `
		INSERT INTO workout_exercises (id, workout_id, name, sets, reps, weight_kg, position, created_at, updated_at)
		SELECT $1, w.id, $3, $4, $5, $6, $7, $8, $8
		FROM workouts w
		WHERE w.id = $2 AND w.user_id = $9
		RETURNING ` + exerciseColumns

	rows, err := q.Query(ctx, query,
		resource.NewID(), workoutID, in.Name, in.Sets, in.Reps, in.WeightKg, in.Position,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("create workout exercise: %w", err)
	}
	ex, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.WorkoutExercise])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resource.ErrNotFound
		}
		return nil, fmt.Errorf("create workout exercise: %w", err)
	}
	return ex, nil
}

// ExercisePatch carries optional updates to a workout exercise.
type ExercisePatch struct {
	Name     *string  `json:"name"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	WeightKg *float64 `json:"weight_kg"`
	Position *int     `json:"position"`
}

// UpdateWorkoutExercise applies a patch to an exercise. The statement is
// scoped to the parent workout and its owner, so a foreign exercise matches
// no row.
func UpdateWorkoutExercise(ctx context.Context, q store.Querier, userID, workoutID, exerciseID string, patch ExercisePatch) (*model.WorkoutExercise, error) {
	sets := []string{}
	args := []any{exerciseID, workoutID, userID}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Sets != nil {
		add("sets", *patch.Sets)
	}
	if patch.Reps != nil {
		add("reps", *patch.Reps)
	}
	if patch.WeightKg != nil {
		add("weight_kg", *patch.WeightKg)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	add("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`
		UPDATE workout_exercises SET %s
		WHERE id = $1 AND workout_id = $2
		  AND workout_id IN (SELECT id FROM workouts WHERE id = $2 AND user_id = $3)
		RETURNING %s`,
		strings.Join(sets, ", "), exerciseColumns,
	)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update workout exercise: %w", err)
	}
	ex, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.WorkoutExercise])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resource.ErrNotFound
		}
		return nil, fmt.Errorf("update workout exercise: %w", err)
	}
	return ex, nil
}

// DeleteWorkoutExercise removes an exercise, with the same parent-and-owner
// scoping as updates.
func DeleteWorkoutExercise(ctx context.Context, q store.Querier, userID, workoutID, exerciseID string) error {
	query := `
		DELETE FROM workout_exercises
		WHERE id = $1 AND workout_id = $2
		  AND workout_id IN (SELECT id FROM workouts WHERE id = $2 AND user_id = $3)
	`

	result, err := q.Exec(ctx, query, exerciseID, workoutID, userID)
	if err != nil {
		return fmt.Errorf("delete workout exercise: %w", err)
	}
	if result.RowsAffected() == 0 {
		return resource.ErrNotFound
	}
	return nil
}

// WorkoutStats summarizes the user's training over a date range.
type WorkoutStats struct {
	Sessions      int64 `json:"sessions"`
	TotalMinutes  int64 `json:"total_minutes"`
	TotalCalories int64 `json:"total_calories"`
}

// GetWorkoutStats aggregates the user's workouts, optionally bounded by
// inclusive start/end dates.
func GetWorkoutStats(ctx context.Context, q store.Querier, userID string, start, end *time.Time) (*WorkoutStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(duration_min), 0),
		       COALESCE(SUM(calories), 0)
		FROM workouts
		WHERE user_id = $1
	`
	args := []any{userID}
	query, args = appendDateRange(query, args, "date", start, end)

	var stats WorkoutStats
	err := q.QueryRow(ctx, query, args...).Scan(&stats.Sessions, &stats.TotalMinutes, &stats.TotalCalories)
	if err != nil {
		return nil, fmt.Errorf("workout stats: %w", err)
	}
	return &stats, nil
}

// appendDateRange adds inclusive date bound predicates to an aggregation
// query.
func appendDateRange(query string, args []any, field string, start, end *time.Time) (string, []any) {
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND %s >= $%d", field, len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND %s <= $%d", field, len(args))
	}
	return query, args
}
