package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

// HabitStreak reports consecutive-day completion runs for one habit.
type HabitStreak struct {
	HabitID string `json:"habit_id"`
	Current int    `json:"current"`
	Longest int    `json:"longest"`
}

// GetHabitStreak computes the current and longest completed-day streaks for
// the user's habit. A habit that does not exist or belongs to someone else
// reports not-found.
func GetHabitStreak(ctx context.Context, q store.Querier, userID, habitID string, today time.Time) (*HabitStreak, error) {
	var owned bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM habits WHERE id = $1 AND user_id = $2)`,
		habitID, userID,
	).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("check habit ownership: %w", err)
	}
	if !owned {
		return nil, resource.ErrNotFound
	}

	rows, err := q.Query(ctx, `
		SELECT date
		FROM habit_entries
		WHERE user_id = $1 AND habit_id = $2 AND completed
		ORDER BY date DESC
	`, userID, habitID)
	if err != nil {
		return nil, fmt.Errorf("load habit entries: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan habit entry date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habit entries: %w", err)
	}

	streak := &HabitStreak{HabitID: habitID}
	if len(dates) == 0 {
		return streak, nil
	}

	// Current streak counts back from today, allowing the user to not have
	// logged today yet.
	day := truncateDay(today)
	if !sameDay(dates[0], day) && !sameDay(dates[0], day.AddDate(0, 0, -1)) {
		streak.Current = 0
	} else {
		expected := truncateDay(dates[0])
		for _, d := range dates {
			if !sameDay(d, expected) {
				break
			}
			streak.Current++
			expected = expected.AddDate(0, 0, -1)
		}
	}

	// Longest streak over the whole history.
	run := 1
	streak.Longest = 1
	for i := 1; i < len(dates); i++ {
		if sameDay(dates[i], truncateDay(dates[i-1]).AddDate(0, 0, -1)) {
			run++
		} else if sameDay(dates[i], dates[i-1]) {
			continue
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
	}

	return streak, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
