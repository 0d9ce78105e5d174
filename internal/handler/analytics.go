package handler

import (
	"net/http"
	"strconv"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/analytics"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/logger"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyticsHandler exposes the six report-building endpoints.
type AnalyticsHandler struct {
	Analytics *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: svc}
}

// fail logs the store failure and replies with the single analytics error.
func (h *AnalyticsHandler) fail(c *gin.Context, report string, err error) {
	logger.Get().Error("analytics report failed",
		zap.String("report", report),
		zap.Error(err),
	)
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "analytics unavailable")
}

func (h *AnalyticsHandler) OverallSummary(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	summary, err := h.Analytics.OverallSummary(claims.UserID)
	if err != nil {
		h.fail(c, "overall-summary", err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	shares, total, err := h.Analytics.CategoryBreakdown(claims.UserID)
	if err != nil {
		h.fail(c, "category-breakdown", err)
		return
	}
	util.Success(c, util.Response{
		"categoryBreakdown": shares,
		"totalExpenses":     total,
	})
}

// MonthlySummary accepts ?year=; the current year when absent.
func (h *AnalyticsHandler) MonthlySummary(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	year, ok := intQuery(c, "year")
	if !ok {
		return
	}

	report, err := h.Analytics.MonthlySummary(claims.UserID, year)
	if err != nil {
		h.fail(c, "monthly-summary", err)
		return
	}
	util.Success(c, util.Response{
		"monthlyData":  report.Months,
		"yearlyTotals": report.Totals,
	})
}

// RecentSummary accepts ?days=; 30 when absent.
func (h *AnalyticsHandler) RecentSummary(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	days, ok := intQuery(c, "days")
	if !ok {
		return
	}

	summary, err := h.Analytics.Recent(claims.UserID, days)
	if err != nil {
		h.fail(c, "recent-summary", err)
		return
	}
	util.Success(c, util.Response{"recentSummary": summary})
}

// Trend accepts ?months=; 6 when absent.
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	months, ok := intQuery(c, "months")
	if !ok {
		return
	}

	points, err := h.Analytics.Trend(claims.UserID, months)
	if err != nil {
		h.fail(c, "income-vs-expenses-trend", err)
		return
	}
	util.Success(c, util.Response{"trendData": points})
}

// Dashboard merges the four standing reports into one payload.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	dashboard, err := h.Analytics.BuildDashboard(claims.UserID)
	if err != nil {
		h.fail(c, "dashboard", err)
		return
	}
	util.Success(c, util.Response{
		"overallSummary":    dashboard.Overall,
		"categoryBreakdown": dashboard.Categories,
		"recentSummary":     dashboard.Recent,
		"trendData":         dashboard.Trend,
	})
}

// intQuery parses an optional positive integer query parameter; zero means
// absent. Writes the error response itself on malformed input.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return 0, false
	}
	return n, true
}
