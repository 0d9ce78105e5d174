package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/models"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
)

// IncomeHandler exposes the income CRUD endpoints.
type IncomeHandler struct {
	Incomes *store.IncomeStore
}

func NewIncomeHandler(incomes *store.IncomeStore) *IncomeHandler {
	return &IncomeHandler{Incomes: incomes}
}

type incomeReq struct {
	Amount      string `json:"amount" binding:"required"`
	Source      string `json:"source" binding:"required,max=64"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

func (h *IncomeHandler) Create(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount, source and date are required")
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

	income := models.Income{
		UserID:      claims.UserID,
		Amount:      amount,
		Source:      strings.TrimSpace(req.Source),
		Date:        date,
		Description: req.Description,
	}
	if err := h.Incomes.Create(&income); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save income")
		return
	}

	util.Success(c, util.Response{"income": income})
}

// List returns the caller's incomes, optionally filtered by ?source= or a
// ?start=YYYY-MM-DD&end=YYYY-MM-DD range.
func (h *IncomeHandler) List(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	var (
		incomes []models.Income
		err     error
	)
	switch {
	case c.Query("start") != "" || c.Query("end") != "":
		var from, to time.Time
		from, to, err = rangeParams(c.Query("start"), c.Query("end"))
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		incomes, err = h.Incomes.ListByOwnerRange(claims.UserID, from, to)
	case c.Query("source") != "":
		incomes, err = h.Incomes.ListByOwnerSource(claims.UserID, c.Query("source"))
	default:
		incomes, err = h.Incomes.ListByOwner(claims.UserID)
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list incomes")
		return
	}

	util.Success(c, util.Response{"incomes": incomes, "count": len(incomes)})
}

func (h *IncomeHandler) Get(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	income, err := h.Incomes.FindByIDOwned(id, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "income not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load income")
		return
	}

	util.Success(c, util.Response{"income": income})
}

func (h *IncomeHandler) Update(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount, source and date are required")
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

	income := models.Income{
		ID:          id,
		UserID:      claims.UserID,
		Amount:      amount,
		Source:      strings.TrimSpace(req.Source),
		Date:        date,
		Description: req.Description,
	}
	if err := h.Incomes.Update(&income); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "income not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update income")
		return
	}

	util.Success(c, util.Response{"message": "income updated"})
}

func (h *IncomeHandler) Delete(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Incomes.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "income not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete income")
		return
	}

	util.Success(c, util.Response{"message": "income deleted"})
}

// pathID parses the :id segment; writes the error response itself on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// rangeParams parses an inclusive start/end date pair; either side may be
// empty, which leaves that end of the range open.
func rangeParams(startStr, endStr string) (time.Time, time.Time, error) {
	// open ends fall back to a very wide window
	from := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if startStr != "" {
		if from, err = parseDate(startStr); err != nil {
			return from, to, err
		}
	}
	if endStr != "" {
		if to, err = parseDate(endStr); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
