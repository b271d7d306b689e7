package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "tx:list:"

// TransactionCache caches per-user income/expense lists in Redis.
// A miss or a Redis error both read as "no cached value"; callers fall back
// to the repository.
type TransactionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTransactionCache returns a new TransactionCache.
func NewTransactionCache(rdb *redis.Client, ttl time.Duration) *TransactionCache {
	return &TransactionCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64, kind dom.Kind) string {
	return keyListPrefix + strconv.FormatInt(userID, 10) + ":" + string(kind)
}

// GetList returns the cached list for the user and kind, or nil if miss.
func (c *TransactionCache) GetList(ctx context.Context, userID int64, kind dom.Kind) ([]dom.Transaction, error) {
	b, err := c.rdb.Get(ctx, listKey(userID, kind)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Transaction
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list in cache.
func (c *TransactionCache) SetList(ctx context.Context, userID int64, kind dom.Kind, list []dom.Transaction) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID, kind), b, c.ttl).Err()
}

// Invalidate drops both cached lists for the user (cache invalidation on write).
func (c *TransactionCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx,
		listKey(userID, dom.KindIncome),
		listKey(userID, dom.KindExpense),
	).Err()
}
