package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mokshhh20/Expense-Tracker-Application/internal/cache"
	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingDate   = errors.New("date is required")
)

// TransactionService handles income/expense records for a single resolved
// user ID per call. The caller is responsible for resolving the ID through
// the auth middleware; nothing here trusts client-supplied identity.
type TransactionService struct {
	repo  repo.TransactionRepo
	cache *cache.TransactionCache
	sf    singleflight.Group
}

// NewTransactionService creates a TransactionService. If c is nil, caching is disabled.
func NewTransactionService(r repo.TransactionRepo, c *cache.TransactionCache) *TransactionService {
	return &TransactionService{repo: r, cache: c}
}

func (s *TransactionService) Add(ctx context.Context, userID int64, kind dom.Kind, title string, amount float64, category, desc string, occurredAt *time.Time) (dom.Transaction, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	desc = strings.TrimSpace(desc)

	if title == "" {
		return dom.Transaction{}, ErrMissingTitle
	}
	if amount <= 0 {
		return dom.Transaction{}, ErrInvalidAmount
	}
	if occurredAt == nil || occurredAt.IsZero() {
		return dom.Transaction{}, ErrMissingDate
	}

	t, err := s.repo.Create(ctx, dom.Transaction{
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Amount:      amount,
		Category:    category,
		Description: desc,
		OccurredAt:  *occurredAt,
	})
	if err != nil {
		return dom.Transaction{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TransactionService) List(ctx context.Context, userID int64, kind dom.Kind) ([]dom.Transaction, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10) + ":" + string(kind)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID, kind); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByKind(ctx, userID, kind)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, kind, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Transaction), nil
	}
	return s.repo.ListByKind(ctx, userID, kind)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id int64, kind dom.Kind) error {
	err := s.repo.Delete(ctx, userID, id, kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// ClearAll removes every transaction the user owns.
func (s *TransactionService) ClearAll(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TransactionService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
