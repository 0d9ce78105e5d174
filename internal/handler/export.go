package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler dumps the caller's transactions as CSV or XLSX.
type ExportHandler struct {
	Incomes  *store.IncomeStore
	Expenses *store.ExpenseStore
}

func NewExportHandler(incomes *store.IncomeStore, expenses *store.ExpenseStore) *ExportHandler {
	return &ExportHandler{Incomes: incomes, Expenses: expenses}
}

// ExportCSV writes incomes and expenses as one flat CSV with a type column.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	incomes, err := h.Incomes.ListByOwner(claims.UserID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load incomes")
		return
	}
	expenses, err := h.Expenses.ListByOwner(claims.UserID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"type", "label", "amount", "description", "date"})
	for _, in := range incomes {
		writer.Write([]string{
			"income", in.Source, in.Amount.StringFixed(2), in.Description,
			in.Date.Format("2006-01-02"),
		})
	}
	for _, ex := range expenses {
		writer.Write([]string{
			"expense", ex.Category, ex.Amount.StringFixed(2), ex.Description,
			ex.Date.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes incomes and expenses to separate sheets of one workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	incomes, err := h.Incomes.ListByOwner(claims.UserID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load incomes")
		return
	}
	expenses, err := h.Expenses.ListByOwner(claims.UserID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const incomeSheet = "Incomes"
	f.SetSheetName("Sheet1", incomeSheet)
	f.SetSheetRow(incomeSheet, "A1", &[]string{"Source", "Amount", "Description", "Date"})
	for i, in := range incomes {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(incomeSheet, cell, &[]interface{}{
			in.Source, in.Amount.StringFixed(2), in.Description,
			in.Date.Format("2006-01-02"),
		})
	}

	const expenseSheet = "Expenses"
	f.NewSheet(expenseSheet)
	f.SetSheetRow(expenseSheet, "A1", &[]string{"Category", "Amount", "Description", "Date"})
	for i, ex := range expenses {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(expenseSheet, cell, &[]interface{}{
			ex.Category, ex.Amount.StringFixed(2), ex.Description,
			ex.Date.Format("2006-01-02"),
		})
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}
}
