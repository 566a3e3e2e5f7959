package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lifelog/lifelog/internal/store"
)

// WellnessSummary aggregates the daily wellness logs over a date range.
type WellnessSummary struct {
	AvgMood       *float64 `json:"avg_mood"`
	AvgSleepHours *float64 `json:"avg_sleep_hours"`
	AvgWaterMl    *float64 `json:"avg_water_ml"`
	LatestWeight  *float64 `json:"latest_weight_kg"`
}

// GetWellnessSummary computes averages across moods, sleep, and water, plus
// the most recent weigh-in. Absent data yields null fields rather than
// zeroes.
func GetWellnessSummary(ctx context.Context, q store.Querier, userID string, start, end *time.Time) (*WellnessSummary, error) {
	summary := &WellnessSummary{}

	avg := func(table, expr string, dest **float64) error {
		query := fmt.Sprintf(`SELECT AVG(%s) FROM %s WHERE user_id = $1`, expr, table)
		args := []any{userID}
		query, args = appendDateRange(query, args, "date", start, end)
		return q.QueryRow(ctx, query, args...).Scan(dest)
	}

	if err := avg("moods", "rating", &summary.AvgMood); err != nil {
		return nil, fmt.Errorf("average mood: %w", err)
	}
	if err := avg("sleep_logs", "hours", &summary.AvgSleepHours); err != nil {
		return nil, fmt.Errorf("average sleep: %w", err)
	}
	if err := avg("water_logs", "milliliters", &summary.AvgWaterMl); err != nil {
		return nil, fmt.Errorf("average water: %w", err)
	}

	var latest float64
	err := q.QueryRow(ctx,
		`SELECT weight_kg FROM weights WHERE user_id = $1 ORDER BY date DESC LIMIT 1`,
		userID,
	).Scan(&latest)
	switch {
	case err == nil:
		summary.LatestWeight = &latest
	case errors.Is(err, pgx.ErrNoRows):
		// No weigh-ins yet.
	default:
		return nil, fmt.Errorf("latest weight: %w", err)
	}

	return summary, nil
}
