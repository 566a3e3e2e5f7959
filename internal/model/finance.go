package model

import "time"

// TransactionKind distinguishes money in from money out.
type TransactionKind string

const (
	TransactionIncome  TransactionKind = "income"
	TransactionExpense TransactionKind = "expense"
)

// IsValid reports whether the kind is one of the known values.
func (k TransactionKind) IsValid() bool {
	return k == TransactionIncome || k == TransactionExpense
}

// Transaction is a single money movement.
type Transaction struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Kind      string    `db:"kind" json:"kind"`
	Category  *string   `db:"category" json:"category,omitempty"`
	Note      *string   `db:"note" json:"note,omitempty"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Budget is a spending cap for a category over a period starting at PeriodStart.
type Budget struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Category    string    `db:"category" json:"category"`
	Amount      float64   `db:"amount" json:"amount"`
	PeriodStart time.Time `db:"period_start" json:"period_start"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
