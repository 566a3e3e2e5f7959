package model

import "time"

// MoodEntry is a 1-10 mood rating, one per user per day.
type MoodEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Note      *string   `db:"note" json:"note,omitempty"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SleepLog records one night's sleep, one per user per day.
type SleepLog struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Hours     float64    `db:"hours" json:"hours"`
	Quality   *int       `db:"quality" json:"quality,omitempty"`
	Bedtime   *time.Time `db:"bedtime" json:"bedtime,omitempty"`
	WakeTime  *time.Time `db:"wake_time" json:"wake_time,omitempty"`
	Date      time.Time  `db:"date" json:"date"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// WaterLog is the day's total water intake, one per user per day.
type WaterLog struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Milliliters int       `db:"milliliters" json:"milliliters"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// WeightLog is a daily weigh-in, one per user per day.
type WeightLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	WeightKg   float64   `db:"weight_kg" json:"weight_kg"`
	BodyFatPct *float64  `db:"body_fat_pct" json:"body_fat_pct,omitempty"`
	Date       time.Time `db:"date" json:"date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
