package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI is a minimal in-memory rendition of the server's wire contract,
// enough to exercise the client's session handling.
type stubAPI struct {
	mu       sync.Mutex
	nextID   int64
	tokens   map[string]bool
	incomes  []Transaction
	expenses []Transaction
}

func newStubAPI() *stubAPI {
	return &stubAPI{tokens: make(map[string]bool)}
}

func (s *stubAPI) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[strings.TrimPrefix(header, "Bearer ")]
}

func (s *stubAPI) store(r *http.Request, list *[]Transaction) Transaction {
	var in TransactionInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	date, _ := time.Parse("2006-01-02", in.Date)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	tx := Transaction{
		ID:          s.nextID,
		Title:       in.Title,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
		CreatedAt:   time.Now().UTC().Add(time.Duration(s.nextID) * time.Millisecond),
	}
	*list = append(*list, tx)
	return tx
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "Secur3!ty" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Username or password incorrect"})
			return
		}
		s.mu.Lock()
		token := "tok-" + req.Username
		s.tokens[token] = true
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  User{ID: 1, Name: "Alice Smith", Username: req.Username},
		})
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.mu.Lock()
		s.tokens = make(map[string]bool)
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := func(fn http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !s.authorized(r) {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "authorization required"})
				return
			}
			fn(w, r)
		}
	}
	mux.HandleFunc("POST /add-income", guarded(func(w http.ResponseWriter, r *http.Request) {
		tx := s.store(r, &s.incomes)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tx)
	}))
	mux.HandleFunc("GET /get-incomes", guarded(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(s.incomes)
	}))
	mux.HandleFunc("POST /add-expense", guarded(func(w http.ResponseWriter, r *http.Request) {
		tx := s.store(r, &s.expenses)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tx)
	}))
	mux.HandleFunc("GET /get-expenses", guarded(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(s.expenses)
	}))
	mux.HandleFunc("DELETE /clear-data", guarded(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.incomes = nil
		s.expenses = nil
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User data cleared"})
	}))
	return mux
}

func newTestClient(t *testing.T) (*Client, *stubAPI) {
	t.Helper()
	api := newStubAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL), api
}

func TestClientLoginStoresToken(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	assert.False(t, c.IsAuthenticated())

	u, err := c.Login(ctx, "alicesmith1", "Secur3!ty")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", u.Name)
	assert.True(t, c.IsAuthenticated())

	got, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestClientLoginFailure(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Login(context.Background(), "alicesmith1", "Wr0ng!pass")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, c.IsAuthenticated())
}

func TestClientAttachesBearerToken(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	// Unauthenticated calls fail locally without touching the network.
	_, err := c.Incomes(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = c.Login(ctx, "alicesmith1", "Secur3!ty")
	require.NoError(t, err)

	require.NoError(t, c.AddIncome(ctx, TransactionInput{
		Title: "Salary", Amount: 2500, Category: "salary", Date: "2026-08-01",
	}))
	require.Len(t, api.incomes, 1)

	list, err := c.Incomes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientTotalsAndHistory(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "alicesmith1", "Secur3!ty")
	require.NoError(t, err)

	require.NoError(t, c.AddIncome(ctx, TransactionInput{Title: "Salary", Amount: 2500, Category: "salary", Date: "2026-08-01"}))
	require.NoError(t, c.AddIncome(ctx, TransactionInput{Title: "Bonus", Amount: 500, Category: "salary", Date: "2026-08-02"}))
	require.NoError(t, c.AddExpense(ctx, TransactionInput{Title: "Rent", Amount: 900, Category: "housing", Date: "2026-08-03"}))

	assert.Equal(t, 3000.0, c.TotalIncome())
	assert.Equal(t, 900.0, c.TotalExpenses())
	assert.Equal(t, 2100.0, c.TotalBalance())

	history := c.RecentHistory(2)
	require.Len(t, history, 2)
	assert.Len(t, c.RecentHistory(10), 3)
}

func TestClientUnauthorizedResetsState(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "alicesmith1", "Secur3!ty")
	require.NoError(t, err)
	require.NoError(t, c.AddIncome(ctx, TransactionInput{Title: "Salary", Amount: 2500, Category: "salary", Date: "2026-08-01"}))

	// Server-side invalidation out from under the client.
	api.mu.Lock()
	api.tokens = make(map[string]bool)
	api.mu.Unlock()

	_, err = c.Incomes(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, c.IsAuthenticated())
	assert.Zero(t, c.TotalIncome(), "local caches cleared on 401")
	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestClientLogoutClearsEverything(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "alicesmith1", "Secur3!ty")
	require.NoError(t, err)
	require.NoError(t, c.AddIncome(ctx, TransactionInput{Title: "Salary", Amount: 2500, Category: "salary", Date: "2026-08-01"}))
	require.NoError(t, c.AddExpense(ctx, TransactionInput{Title: "Rent", Amount: 900, Category: "housing", Date: "2026-08-02"}))

	require.NoError(t, c.Logout(ctx))

	assert.False(t, c.IsAuthenticated())
	assert.Zero(t, c.TotalIncome())
	assert.Zero(t, c.TotalExpenses())
	assert.Empty(t, c.RecentHistory(10))

	// Server no longer accepts the old token.
	api.mu.Lock()
	assert.Empty(t, api.tokens)
	api.mu.Unlock()

	// Logging out twice is harmless.
	assert.NoError(t, c.Logout(ctx))
}

func TestClientRegister(t *testing.T) {
	c, _ := newTestClient(t)
	require.NoError(t, c.Register(context.Background(), "Alice Smith", "alicesmith1", "Secur3!ty"))
	assert.False(t, c.IsAuthenticated(), "register does not log in")
}
