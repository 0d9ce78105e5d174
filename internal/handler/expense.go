package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler exposes the expense CRUD endpoints.
type ExpenseHandler struct {
	Expenses *store.ExpenseStore
}

func NewExpenseHandler(expenses *store.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

type expenseReq struct {
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,max=32"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date" binding:"required"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount, category and date are required")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	expense := models.Expense{
		UserID:      claims.UserID,
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Date:        date,
	}
	if err := h.Expenses.Create(&expense); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save expense")
		return
	}

	util.Success(c, util.Response{"expense": expense})
}

// List returns the caller's expenses, optionally filtered by ?category= or a
// ?start=YYYY-MM-DD&end=YYYY-MM-DD range.
func (h *ExpenseHandler) List(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var (
		expenses []models.Expense
		err      error
	)
	switch {
	case c.Query("start") != "" || c.Query("end") != "":
		var from, to time.Time
		from, to, err = rangeParams(c.Query("start"), c.Query("end"))
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		expenses, err = h.Expenses.ListByOwnerRange(claims.UserID, from, to)
	case c.Query("category") != "":
		expenses, err = h.Expenses.ListByOwnerCategory(claims.UserID, c.Query("category"))
	default:
		expenses, err = h.Expenses.ListByOwner(claims.UserID)
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list expenses")
		return
	}

	util.Success(c, util.Response{"expenses": expenses, "count": len(expenses)})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.Expenses.FindByIDOwned(id, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expense")
		return
	}

	util.Success(c, util.Response{"expense": expense})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount, category and date are required")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	expense := models.Expense{
		ID:          id,
		UserID:      claims.UserID,
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Date:        date,
	}
	if err := h.Expenses.Update(&expense); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update expense")
		return
	}

	util.Success(c, util.Response{"message": "expense updated"})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Expenses.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "expense not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete expense")
		return
	}

	util.Success(c, util.Response{"message": "expense deleted"})
}

// Categories lists the caller's distinct expense categories.
func (h *ExpenseHandler) Categories(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	categories, err := h.Expenses.DistinctCategories(claims.UserID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return
	}

	util.Success(c, util.Response{"categories": categories})
}
