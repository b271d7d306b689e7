package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txCols = []string{"id", "user_id", "kind", "title", "amount", "category", "description", "occurred_at", "created_at"}

func TestTransactionRepoCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	occurred := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
		WithArgs(int64(7), dom.KindIncome, "Salary", 2500.0, "salary", "monthly", occurred).
		WillReturnRows(pgxmock.NewRows(txCols).
			AddRow(int64(1), int64(7), dom.KindIncome, "Salary", 2500.0, "salary", "monthly", occurred, created))

	r := NewPGTransactionRepo(mock)
	tx, err := r.Create(context.Background(), dom.Transaction{
		UserID:      7,
		Kind:        dom.KindIncome,
		Title:       "Salary",
		Amount:      2500,
		Category:    "salary",
		Description: "monthly",
		OccurredAt:  occurred,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.ID)
	assert.Equal(t, int64(7), tx.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepoListScopesByUserAndKind(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	occurred := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions WHERE user_id = $1 AND kind = $2`)).
		WithArgs(int64(7), dom.KindExpense).
		WillReturnRows(pgxmock.NewRows(txCols).
			AddRow(int64(2), int64(7), dom.KindExpense, "Rent", 900.0, "housing", "", occurred, created))

	r := NewPGTransactionRepo(mock)
	list, err := r.ListByKind(context.Background(), 7, dom.KindExpense)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rent", list[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepoDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2 AND kind = $3`,
	)).
		WithArgs(int64(2), int64(7), dom.KindExpense).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	r := NewPGTransactionRepo(mock)
	require.NoError(t, r.Delete(context.Background(), 7, 2, dom.KindExpense))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepoDeleteNoMatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Row exists but belongs to someone else: zero rows affected.
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2 AND kind = $3`,
	)).
		WithArgs(int64(2), int64(99), dom.KindExpense).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	r := NewPGTransactionRepo(mock)
	err = r.Delete(context.Background(), 99, 2, dom.KindExpense)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepoDeleteAllForUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE user_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	r := NewPGTransactionRepo(mock)
	require.NoError(t, r.DeleteAllForUser(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
