package model

import "time"

// Workout is a single training session. Multiple sessions per day are allowed.
type Workout struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Kind        *string   `db:"kind" json:"kind,omitempty"`
	DurationMin *int      `db:"duration_min" json:"duration_min,omitempty"`
	Calories    *int      `db:"calories" json:"calories,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Exercises is attached on reads; it is not a column.
	Exercises []*WorkoutExercise `db:"-" json:"exercises"`
}

// WorkoutExercise is a child record of a workout. It is only ever reached
// through its parent, and ownership checks happen on the parent.
type WorkoutExercise struct {
	ID        string    `db:"id" json:"id"`
	WorkoutID string    `db:"workout_id" json:"workout_id"`
	Name      string    `db:"name" json:"name"`
	Sets      *int      `db:"sets" json:"sets,omitempty"`
	Reps      *int      `db:"reps" json:"reps,omitempty"`
	WeightKg  *float64  `db:"weight_kg" json:"weight_kg,omitempty"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
