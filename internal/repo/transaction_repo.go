package repo

import (
	"context"

	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo provides income/expense persistence.
// Every query is scoped by user ID; there is no unscoped access path.
type TransactionRepo interface {
	Create(ctx context.Context, t dom.Transaction) (dom.Transaction, error)
	ListByKind(ctx context.Context, userID int64, kind dom.Kind) ([]dom.Transaction, error)
	Delete(ctx context.Context, userID, id int64, kind dom.Kind) error
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// PGTransactionRepo implements TransactionRepo with Postgres.
type PGTransactionRepo struct {
	db DB
}

func NewPGTransactionRepo(db DB) *PGTransactionRepo {
	return &PGTransactionRepo{db: db}
}

func (r *PGTransactionRepo) Create(ctx context.Context, t dom.Transaction) (dom.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, kind, title, amount, category, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, kind, title, amount, category, description, occurred_at, created_at`
	var out dom.Transaction
	err := r.db.QueryRow(ctx, query,
		t.UserID, t.Kind, t.Title, t.Amount, t.Category, t.Description, t.OccurredAt,
	).Scan(
		&out.ID, &out.UserID, &out.Kind, &out.Title, &out.Amount,
		&out.Category, &out.Description, &out.OccurredAt, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTransactionRepo) ListByKind(ctx context.Context, userID int64, kind dom.Kind) ([]dom.Transaction, error) {
	query := `
		SELECT id, user_id, kind, title, amount, category, description, occurred_at, created_at
		FROM transactions WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Transaction
	for rows.Next() {
		var t dom.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Title, &t.Amount,
			&t.Category, &t.Description, &t.OccurredAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete removes one record if it belongs to userID and has the given kind.
// Returns pgx.ErrNoRows when nothing matched, so a user can never observe
// (or remove) another user's rows.
func (r *PGTransactionRepo) Delete(ctx context.Context, userID, id int64, kind dom.Kind) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2 AND kind = $3`,
		id, userID, kind,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGTransactionRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
	return err
}
