package model

import "time"

// Meal is a logged meal with optional macros. Several per day are expected.
type Meal struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	MealType  *string   `db:"meal_type" json:"meal_type,omitempty"`
	Calories  *int      `db:"calories" json:"calories,omitempty"`
	ProteinG  *float64  `db:"protein_g" json:"protein_g,omitempty"`
	CarbsG    *float64  `db:"carbs_g" json:"carbs_g,omitempty"`
	FatG      *float64  `db:"fat_g" json:"fat_g,omitempty"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
