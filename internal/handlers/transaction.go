package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mokshhh20/Expense-Tracker-Application/internal/auth"
	dom "github.com/mokshhh20/Expense-Tracker-Application/internal/domain"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/dto"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles income and expense endpoints.
// All routes sit behind auth.RequireAuth; the user ID always comes from the
// resolved session, never from the request body or path.
type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(svc *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// AddIncome godoc
// @Summary      Add an income
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.AddTransactionRequest  true  "Income body"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /add-income [post]
func (h *TransactionHandler) AddIncome(c *gin.Context) {
	h.add(c, dom.KindIncome)
}

// AddExpense godoc
// @Summary      Add an expense
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.AddTransactionRequest  true  "Expense body"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /add-expense [post]
func (h *TransactionHandler) AddExpense(c *gin.Context) {
	h.add(c, dom.KindExpense)
}

func (h *TransactionHandler) add(c *gin.Context, kind dom.Kind) {
	var req dto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Add(c.Request.Context(), userID, kind,
		req.Title, req.Amount, req.Category, req.Description, req.Date.Ptr())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingTitle),
			errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrMissingDate):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, toResponse(t))
}

// GetIncomes godoc
// @Summary      List the caller's incomes
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.TransactionResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /get-incomes [get]
func (h *TransactionHandler) GetIncomes(c *gin.Context) {
	h.list(c, dom.KindIncome)
}

// GetExpenses godoc
// @Summary      List the caller's expenses
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.TransactionResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /get-expenses [get]
func (h *TransactionHandler) GetExpenses(c *gin.Context) {
	h.list(c, dom.KindExpense)
}

func (h *TransactionHandler) list(c *gin.Context, kind dom.Kind) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

// DeleteIncome godoc
// @Summary      Delete one income
// @Tags         transactions
// @Security     BearerAuth
// @Param        id   path  int  true  "Income ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /delete-income/{id} [delete]
func (h *TransactionHandler) DeleteIncome(c *gin.Context) {
	h.delete(c, dom.KindIncome)
}

// DeleteExpense godoc
// @Summary      Delete one expense
// @Tags         transactions
// @Security     BearerAuth
// @Param        id   path  int  true  "Expense ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /delete-expense/{id} [delete]
func (h *TransactionHandler) DeleteExpense(c *gin.Context) {
	h.delete(c, dom.KindExpense)
}

func (h *TransactionHandler) delete(c *gin.Context, kind dom.Kind) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), userID, id, kind); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearData godoc
// @Summary      Delete all of the caller's transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /clear-data [delete]
func (h *TransactionHandler) ClearData(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	if err := h.svc.ClearAll(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User data cleared"})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func toResponse(t dom.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID,
		Title:       t.Title,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}
}

func toResponses(list []dom.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(list))
	for i := range list {
		out[i] = toResponse(list[i])
	}
	return out
}
