// Package client is a Go client for the Expense Tracker API. It owns the
// session credential: it stores the token returned by login, attaches it as
// a bearer header on every user-scoped call, and drops all local state the
// moment the server answers 401, so a stale token never produces broken views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrUnauthenticated is returned when no session is held or the server
// rejected the token. The client has already reset itself when this is
// returned; the caller should route back to login.
var ErrUnauthenticated = errors.New("not authenticated")

// APIError carries the HTTP status and the server's message field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// User is the public view of the logged-in account.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Transaction is one income or expense record as returned by the API.
type Transaction struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionInput is the body for add-income / add-expense.
type TransactionInput struct {
	Title       string  `json:"title"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // "2006-01-02" or RFC3339
}

// Client talks to the API and holds the current session plus local copies of
// the user's incomes and expenses. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client

	mu            sync.Mutex
	token         string
	authenticated bool
	user          User
	incomes       []Transaction
	expenses      []Transaction
}

// New returns a client for the API at baseURL (e.g. "http://localhost:8080/api/v1").
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsAuthenticated reports whether a session token is currently held.
func (c *Client) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// CurrentUser returns the logged-in user, if any.
func (c *Client) CurrentUser() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.authenticated
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, name, username, password string) error {
	body := map[string]string{"name": name, "username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil, false)
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp, false); err != nil {
		return User{}, err
	}
	c.mu.Lock()
	c.token = resp.Token
	c.authenticated = true
	c.user = resp.User
	c.mu.Unlock()
	return resp.User, nil
}

// Logout invalidates the session server-side (best effort) and clears the
// token and all locally cached incomes and expenses.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil, true)
	c.reset()
	if errors.Is(err, ErrUnauthenticated) {
		// Already logged out as far as the server is concerned.
		return nil
	}
	return err
}

// AddIncome records an income and refreshes the local income list.
func (c *Client) AddIncome(ctx context.Context, in TransactionInput) error {
	if err := c.do(ctx, http.MethodPost, "/add-income", in, nil, true); err != nil {
		return err
	}
	_, err := c.Incomes(ctx)
	return err
}

// Incomes fetches the caller's incomes and caches them locally.
func (c *Client) Incomes(ctx context.Context) ([]Transaction, error) {
	var list []Transaction
	if err := c.do(ctx, http.MethodGet, "/get-incomes", nil, &list, true); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.incomes = list
	c.mu.Unlock()
	return list, nil
}

// DeleteIncome removes one income and refreshes the local income list.
func (c *Client) DeleteIncome(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, "/delete-income/"+strconv.FormatInt(id, 10), nil, nil, true); err != nil {
		return err
	}
	_, err := c.Incomes(ctx)
	return err
}

// AddExpense records an expense and refreshes the local expense list.
func (c *Client) AddExpense(ctx context.Context, in TransactionInput) error {
	if err := c.do(ctx, http.MethodPost, "/add-expense", in, nil, true); err != nil {
		return err
	}
	_, err := c.Expenses(ctx)
	return err
}

// Expenses fetches the caller's expenses and caches them locally.
func (c *Client) Expenses(ctx context.Context) ([]Transaction, error) {
	var list []Transaction
	if err := c.do(ctx, http.MethodGet, "/get-expenses", nil, &list, true); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.expenses = list
	c.mu.Unlock()
	return list, nil
}

// DeleteExpense removes one expense and refreshes the local expense list.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, "/delete-expense/"+strconv.FormatInt(id, 10), nil, nil, true); err != nil {
		return err
	}
	_, err := c.Expenses(ctx)
	return err
}

// ClearData deletes every transaction the user owns and empties the local caches.
func (c *Client) ClearData(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/clear-data", nil, nil, true); err != nil {
		return err
	}
	c.mu.Lock()
	c.incomes = nil
	c.expenses = nil
	c.mu.Unlock()
	return nil
}

// TotalIncome sums the locally cached incomes.
func (c *Client) TotalIncome() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.incomes)
}

// TotalExpenses sums the locally cached expenses.
func (c *Client) TotalExpenses() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.expenses)
}

// TotalBalance is income minus expenses over the cached lists.
func (c *Client) TotalBalance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.incomes) - sum(c.expenses)
}

// RecentHistory returns up to n cached transactions of either kind, newest first.
func (c *Client) RecentHistory(n int) []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := make([]Transaction, 0, len(c.incomes)+len(c.expenses))
	merged = append(merged, c.incomes...)
	merged = append(merged, c.expenses...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if n >= 0 && len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

func sum(list []Transaction) float64 {
	var total float64
	for _, t := range list {
		total += t.Amount
	}
	return total
}

func (c *Client) reset() {
	c.mu.Lock()
	c.token = ""
	c.authenticated = false
	c.user = User{}
	c.incomes = nil
	c.expenses = nil
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var token string
	if authed {
		c.mu.Lock()
		token = c.token
		c.mu.Unlock()
		if token == "" {
			return ErrUnauthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.reset()
		return ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
