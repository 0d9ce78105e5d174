package router

import (
	"time"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/analytics"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/auth"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/config"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/handler"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/middleware"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/store"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires stores, services and handlers onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLog(), gin.Recovery())

	users := store.NewUserStore(db)
	incomes := store.NewIncomeStore(db)
	expenses := store.NewExpenseStore(db)

	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	authSvc := auth.NewService(users, tokens, cfg.Security.BcryptCost)
	analyticsSvc := analytics.NewService(incomes, expenses)

	api := r.Group("/api")

	// no authentication needed
	authHandler := handler.NewAuthHandler(authSvc, users)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// everything below resolves the caller from the bearer token
	protected := api.Group("")
	protected.Use(middleware.Auth(tokens))

	protected.GET("/auth/me", authHandler.Me)

	incomeHandler := handler.NewIncomeHandler(incomes)
	protected.POST("/income", incomeHandler.Create)
	protected.GET("/income", incomeHandler.List)
	protected.GET("/income/:id", incomeHandler.Get)
	protected.PUT("/income/:id", incomeHandler.Update)
	protected.DELETE("/income/:id", incomeHandler.Delete)

	expenseHandler := handler.NewExpenseHandler(expenses)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/categories", expenseHandler.Categories)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	protected.GET("/analytics/overall-summary", analyticsHandler.OverallSummary)
	protected.GET("/analytics/category-breakdown", analyticsHandler.CategoryBreakdown)
	protected.GET("/analytics/monthly-summary", analyticsHandler.MonthlySummary)
	protected.GET("/analytics/recent-summary", analyticsHandler.RecentSummary)
	protected.GET("/analytics/income-vs-expenses-trend", analyticsHandler.Trend)
	protected.GET("/analytics/dashboard", analyticsHandler.Dashboard)

	exportHandler := handler.NewExportHandler(incomes, expenses)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
