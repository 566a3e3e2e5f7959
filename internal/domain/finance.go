package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/lifelog/lifelog/internal/store"
)

// CategoryTotal is one category's expense total.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// FinanceSummary aggregates the user's transactions over a date range.
type FinanceSummary struct {
	Income     float64         `json:"income"`
	Expense    float64         `json:"expense"`
	Net        float64         `json:"net"`
	ByCategory []CategoryTotal `json:"by_category"`
}

// GetFinanceSummary computes income/expense/net totals plus per-category
// expense totals for the user's transactions.
func GetFinanceSummary(ctx context.Context, q store.Querier, userID string, start, end *time.Time) (*FinanceSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}
	query, args = appendDateRange(query, args, "date", start, end)

	summary := &FinanceSummary{ByCategory: []CategoryTotal{}}
	if err := q.QueryRow(ctx, query, args...).Scan(&summary.Income, &summary.Expense); err != nil {
		return nil, fmt.Errorf("finance summary: %w", err)
	}
	summary.Net = summary.Income - summary.Expense

	catQuery := `
		SELECT COALESCE(category, 'uncategorized'), SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND kind = 'expense'
	`
	catArgs := []any{userID}
	catQuery, catArgs = appendDateRange(catQuery, catArgs, "date", start, end)
	catQuery += " GROUP BY 1 ORDER BY 2 DESC"

	rows, err := q.Query(ctx, catQuery, catArgs...)
	if err != nil {
		return nil, fmt.Errorf("finance summary by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}

	return summary, nil
}
