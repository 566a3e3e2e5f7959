package model

import "time"

// Habit is a recurring practice the user wants to keep up.
type Habit struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Cadence     string    `db:"cadence" json:"cadence"`
	Color       *string   `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// HabitEntry records one day's outcome for a habit. Listing is typically
// narrowed with a habit_id equality filter.
type HabitEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	HabitID   string    `db:"habit_id" json:"habit_id"`
	Completed bool      `db:"completed" json:"completed"`
	Note      *string   `db:"note" json:"note,omitempty"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
