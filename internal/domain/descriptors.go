// Package domain declares each tracker entity's queryable surface and the
// handful of bespoke read-only aggregations that sit beside the generic
// engine. Everything here is either static configuration or a direct,
// owner-scoped read.
package domain

import "github.com/lifelog/lifelog/internal/resource"

// Goals tracks long-running objectives.
var Goals = resource.MustDescriptor(resource.Descriptor{
	Table:        "goals",
	Columns:      []string{"id", "user_id", "title", "description", "category", "status", "target_date", "created_at", "updated_at"},
	Writable:     []string{"title", "description", "category", "status", "target_date"},
	Required:     []string{"title"},
	SearchFields: []string{"title", "description"},
	DateField:    "target_date",
	SortField:    "created_at",
	SortDesc:     true,
})

// Workouts allows several sessions per day; exercises attach as a relation.
var Workouts = resource.MustDescriptor(resource.Descriptor{
	Table:        "workouts",
	Columns:      []string{"id", "user_id", "name", "kind", "duration_min", "calories", "notes", "date", "created_at", "updated_at"},
	Writable:     []string{"name", "kind", "duration_min", "calories", "notes", "date"},
	Required:     []string{"name", "date"},
	SearchFields: []string{"name", "notes"},
	SortDesc:     true,
})

// Journals keeps one entry per user per day.
var Journals = resource.MustDescriptor(resource.Descriptor{
	Table:        "journals",
	Columns:      []string{"id", "user_id", "title", "content", "date", "created_at", "updated_at"},
	Writable:     []string{"title", "content", "date"},
	Required:     []string{"content", "date"},
	SearchFields: []string{"title", "content"},
	SortDesc:     true,
	DailyUnique:  true,
})

// Transactions records money movements.
var Transactions = resource.MustDescriptor(resource.Descriptor{
	Table:        "transactions",
	Columns:      []string{"id", "user_id", "amount", "kind", "category", "note", "date", "created_at", "updated_at"},
	Writable:     []string{"amount", "kind", "category", "note", "date"},
	Required:     []string{"amount", "kind", "date"},
	SearchFields: []string{"note", "category"},
	SortDesc:     true,
})

// Budgets caps spending per category per period.
var Budgets = resource.MustDescriptor(resource.Descriptor{
	Table:        "budgets",
	Columns:      []string{"id", "user_id", "category", "amount", "period_start", "created_at", "updated_at"},
	Writable:     []string{"category", "amount", "period_start"},
	Required:     []string{"category", "amount", "period_start"},
	SearchFields: []string{"category"},
	DateField:    "period_start",
	SortDesc:     true,
})

// Habits are the recurring practices themselves; outcomes live in
// HabitEntries.
var Habits = resource.MustDescriptor(resource.Descriptor{
	Table:        "habits",
	Columns:      []string{"id", "user_id", "name", "description", "cadence", "color", "created_at", "updated_at"},
	Writable:     []string{"name", "description", "cadence", "color"},
	Required:     []string{"name"},
	SearchFields: []string{"name", "description"},
	DateField:    "created_at",
	SortDesc:     true,
})

// HabitEntries are narrowed with a habit_id equality filter on list.
var HabitEntries = resource.MustDescriptor(resource.Descriptor{
	Table:        "habit_entries",
	Columns:      []string{"id", "user_id", "habit_id", "completed", "note", "date", "created_at", "updated_at"},
	Writable:     []string{"habit_id", "completed", "note", "date"},
	Required:     []string{"habit_id", "date"},
	SearchFields: []string{"note"},
	SortDesc:     true,
})

// Moods keeps one 1-10 rating per user per day.
var Moods = resource.MustDescriptor(resource.Descriptor{
	Table:        "moods",
	Columns:      []string{"id", "user_id", "rating", "note", "date", "created_at", "updated_at"},
	Writable:     []string{"rating", "note", "date"},
	Required:     []string{"rating", "date"},
	SearchFields: []string{"note"},
	SortDesc:     true,
	DailyUnique:  true,
})

// SleepLogs keeps one night's sleep per user per day.
var SleepLogs = resource.MustDescriptor(resource.Descriptor{
	Table:       "sleep_logs",
	Columns:     []string{"id", "user_id", "hours", "quality", "bedtime", "wake_time", "date", "created_at", "updated_at"},
	Writable:    []string{"hours", "quality", "bedtime", "wake_time", "date"},
	Required:    []string{"hours", "date"},
	SortDesc:    true,
	DailyUnique: true,
})

// Meals allows several logged meals per day.
var Meals = resource.MustDescriptor(resource.Descriptor{
	Table:        "meals",
	Columns:      []string{"id", "user_id", "name", "meal_type", "calories", "protein_g", "carbs_g", "fat_g", "date", "created_at", "updated_at"},
	Writable:     []string{"name", "meal_type", "calories", "protein_g", "carbs_g", "fat_g", "date"},
	Required:     []string{"name", "date"},
	SearchFields: []string{"name"},
	SortDesc:     true,
})

// WaterLogs keeps the day's total intake, one row per user per day.
var WaterLogs = resource.MustDescriptor(resource.Descriptor{
	Table:       "water_logs",
	Columns:     []string{"id", "user_id", "milliliters", "date", "created_at", "updated_at"},
	Writable:    []string{"milliliters", "date"},
	Required:    []string{"milliliters", "date"},
	SortDesc:    true,
	DailyUnique: true,
})

// Weights keeps one weigh-in per user per day.
var Weights = resource.MustDescriptor(resource.Descriptor{
	Table:       "weights",
	Columns:     []string{"id", "user_id", "weight_kg", "body_fat_pct", "date", "created_at", "updated_at"},
	Writable:    []string{"weight_kg", "body_fat_pct", "date"},
	Required:    []string{"weight_kg", "date"},
	SortDesc:    true,
	DailyUnique: true,
})

// Books tracks reading.
var Books = resource.MustDescriptor(resource.Descriptor{
	Table:        "books",
	Columns:      []string{"id", "user_id", "title", "author", "status", "rating", "notes", "created_at", "updated_at"},
	Writable:     []string{"title", "author", "status", "rating", "notes"},
	Required:     []string{"title"},
	SearchFields: []string{"title", "author", "notes"},
	DateField:    "created_at",
	SortDesc:     true,
})

// Medications are standing prescriptions, filtered with ?active=true.
var Medications = resource.MustDescriptor(resource.Descriptor{
	Table:        "medications",
	Columns:      []string{"id", "user_id", "name", "dosage", "schedule", "active", "created_at", "updated_at"},
	Writable:     []string{"name", "dosage", "schedule", "active"},
	Required:     []string{"name"},
	SearchFields: []string{"name"},
	DateField:    "created_at",
	SortDesc:     true,
})

// Meditations allows several sittings per day.
var Meditations = resource.MustDescriptor(resource.Descriptor{
	Table:        "meditations",
	Columns:      []string{"id", "user_id", "duration_min", "technique", "note", "date", "created_at", "updated_at"},
	Writable:     []string{"duration_min", "technique", "note", "date"},
	Required:     []string{"duration_min", "date"},
	SearchFields: []string{"note", "technique"},
	SortDesc:     true,
})
