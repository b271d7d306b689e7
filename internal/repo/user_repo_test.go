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

var userCols = []string{"id", "name", "username", "password_hash", "created_at"}

func TestUserRepoGetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, username, password_hash, created_at FROM users WHERE username = $1`,
	)).
		WithArgs("alicesmith1").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "Alice Smith", "alicesmith1", "$2a$10$hash", created))

	r := NewPGUserRepo(mock)
	u, err := r.GetByUsername(context.Background(), "alicesmith1")
	require.NoError(t, err)
	assert.Equal(t, dom.User{
		ID:           1,
		Name:         "Alice Smith",
		Username:     "alicesmith1",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    created,
	}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByUsernameNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, username, password_hash, created_at FROM users WHERE username = $1`,
	)).
		WithArgs("nosuchuser1").
		WillReturnError(pgx.ErrNoRows)

	r := NewPGUserRepo(mock)
	_, err = r.GetByUsername(context.Background(), "nosuchuser1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, username, password_hash)`)).
		WithArgs("Alice Smith", "alicesmith1", "$2a$10$hash").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "Alice Smith", "alicesmith1", "$2a$10$hash", created))

	r := NewPGUserRepo(mock)
	u, err := r.Create(context.Background(), "Alice Smith", "alicesmith1", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "alicesmith1", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
