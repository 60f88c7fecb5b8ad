// Package devserver is a self-contained development backend for the
// Pennywise client. It serves the full API surface against an in-memory
// SQLite database, seeded with demo data, so the CLI and the SDK tests have
// something real to talk to.
package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/config"
	"pennywise/internal/devserver/store"
	"pennywise/internal/logger"
	"pennywise/internal/validator"
)

// Server bundles the router, the store and the background materializer.
type Server struct {
	router *gin.Engine
	store  *store.Store
	cron   *Materializer
}

// New builds a fully wired server on the given store.
func New(s *store.Store) *Server {
	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging())
	router.Use(ErrorHandler())
	router.Use(CORS())

	authHandler := NewAuthHandler(s)
	accountHandler := NewAccountHandler(s)
	transactionHandler := NewTransactionHandler(s)
	budgetHandler := NewBudgetHandler(s)
	goalHandler := NewGoalHandler(s)
	recurringHandler := NewRecurringHandler(s)
	notificationHandler := NewNotificationHandler(s)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := router.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-2fa", authHandler.VerifyTwoFactor)
	auth.POST("/refresh-token", authHandler.Refresh)

	// Protected auth routes
	authProtected := router.Group("/api/auth")
	authProtected.Use(AuthMiddleware())
	authProtected.POST("/logout", authHandler.Logout)

	protected := router.Group("/api")
	protected.Use(AuthMiddleware())

	// Profile sits outside /api/auth so the client transport treats it as a
	// regular resource and injects the bearer token.
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/summary", accountHandler.GetSummary)
	accounts.GET("/types", accountHandler.GetTypes)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/transfer", transactionHandler.Transfer)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.GET("/categories", transactionHandler.GetCategories)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/summary", budgetHandler.GetSummary)
	budgets.GET("/periods", budgetHandler.GetPeriods)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/summary", goalHandler.GetSummary)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)

	recurring := protected.Group("/recurring-transactions")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/summary", recurringHandler.GetSummary)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread", notificationHandler.GetUnread)
	notifications.GET("/summary", notificationHandler.GetSummary)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)

	// Analytics routes take the analytics token, not the access token.
	analyticsHandler := NewAnalyticsHandler(s)
	analytics := router.Group("/api/analytics")
	analytics.Use(AnalyticsAuthMiddleware())
	analytics.GET("/overview", analyticsHandler.GetOverview)
	analytics.GET("/insights", analyticsHandler.GetInsights)

	return &Server{
		router: router,
		store:  s,
		cron:   NewMaterializer(s),
	}
}

// Handler returns the HTTP handler, for mounting in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the background materializer and serves until the listener
// fails.
func (s *Server) Run() error {
	s.cron.Start()
	defer s.cron.Stop()

	port := config.Get().Port
	logger.Get().Infof("Starting Pennywise dev server on port %s", port)
	return s.router.Run(":" + port)
}
