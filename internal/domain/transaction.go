package domain

import "time"

// Kind separates income from expense records.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	ID          int64
	UserID      int64
	Kind        Kind
	Title       string
	Amount      float64
	Category    string
	Description string
	OccurredAt  time.Time

	CreatedAt time.Time
}
