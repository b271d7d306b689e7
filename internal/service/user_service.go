package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/repo"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("user already exists")
)

// ValidationError names the first field that failed registration validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{6,30}$`)
)

const passwordSpecials = "@#$%!&*"

// dummyHash is compared against when the username does not exist, so a login
// for an unknown user costs about the same as one with a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService handles registration and credential verification.
type UserService struct {
	repo repo.UserRepo
	cost int
}

// NewUserService returns a new UserService. cost is the bcrypt work factor.
func NewUserService(repo repo.UserRepo, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, cost: cost}
}

// Register validates the input, hashes the password and creates the user.
// Validation runs before any storage access; the first failing field wins.
func (s *UserService) Register(ctx context.Context, name, username, password string) (dom.User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)

	if err := validateRegistration(name, username, password); err != nil {
		return dom.User{}, err
	}

	// Friendly pre-check; the UNIQUE constraint below closes the race.
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return dom.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, name, username, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login verifies the password against the stored hash and returns the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both return ErrInvalidCredentials, and the unknown-user path still burns a
// bcrypt compare so timing does not give the difference away either.
func (s *UserService) Login(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func validateRegistration(name, username, password string) error {
	if !nameRe.MatchString(name) {
		return &ValidationError{Field: "name", Message: "Name must contain only characters and spaces"}
	}
	if !usernameRe.MatchString(username) {
		return &ValidationError{Field: "username", Message: "Username must be 6-30 characters long and include only letters and numbers"}
	}
	if !validPassword(password) {
		return &ValidationError{
			Field:   "password",
			Message: "Password must be 8-15 characters long, include at least one digit, one lowercase letter, one uppercase letter, and one special character",
		}
	}
	return nil
}

// validPassword checks 8-15 chars with at least one digit, one lowercase,
// one uppercase and one of @#$%!&*. Go's regexp has no lookahead, so the
// character classes are counted directly.
func validPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 15 {
		return false
	}
	var digit, lower, upper, special bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return digit && lower && upper && special
}
