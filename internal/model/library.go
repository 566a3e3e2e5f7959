package model

import "time"

// Book tracks reading progress and ratings.
type Book struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Author    *string   `db:"author" json:"author,omitempty"`
	Status    string    `db:"status" json:"status"`
	Rating    *int      `db:"rating" json:"rating,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Medication is a standing prescription or supplement.
type Medication struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Dosage    *string   `db:"dosage" json:"dosage,omitempty"`
	Schedule  *string   `db:"schedule" json:"schedule,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Meditation is a single sitting. Multiple per day are allowed.
type Meditation struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	DurationMin int       `db:"duration_min" json:"duration_min"`
	Technique   *string   `db:"technique" json:"technique,omitempty"`
	Note        *string   `db:"note" json:"note,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
