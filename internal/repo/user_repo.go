package repo

import (
	"context"

	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, name, username, passwordHash string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByUsername returns the user by username. Lookup is case-sensitive.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// Create inserts a new user and returns it. The UNIQUE constraint on
// username closes the check-then-insert race; callers map 23505 to a
// conflict error.
func (r *PGUserRepo) Create(ctx context.Context, name, username, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (name, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, username, password_hash, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, name, username, passwordHash).Scan(
		&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.CreatedAt,
	)
	return u, err
}
