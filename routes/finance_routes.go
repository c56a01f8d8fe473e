package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/controllers"
	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
	"github.com/campusbridge/admissions_backend/websocket"
)

// RegisterCommissionRoutes sets up the commission ledger endpoints.
func RegisterCommissionRoutes(e *echo.Echo, commissions *services.CommissionService) {
	commissionController := controllers.NewCommissionController(commissions)

	group := e.Group("/api/commissions")
	group.Use(middleware.JWTMiddleware())

	// Statistics before /:id so the path segment is not captured as an id
	group.GET("/statistics", commissionController.GetStatistics)
	group.GET("", commissionController.ListCommissions)
	group.GET("/consultancy/:id", commissionController.GetByConsultancy)
	group.GET("/university/:id", commissionController.GetByUniversity)
	group.GET("/:id", commissionController.GetCommission)

	admin := group.Group("")
	admin.Use(middleware.RequireRole(models.RoleSuperadmin))
	admin.POST("", commissionController.CreateCommission)
	admin.PUT("/:id/status", commissionController.UpdateCommissionStatus)
	admin.PUT("/:id", commissionController.UpdateCommission)
	admin.DELETE("/:id", commissionController.DeleteCommission)
}

// RegisterWalletRoutes sets up the per-entity wallet ledger endpoints.
// All wallet writes are superadmin-only.
func RegisterWalletRoutes(e *echo.Echo, wallets *services.WalletService, hub *websocket.Hub) {
	walletController := controllers.NewWalletController(wallets, hub)

	group := e.Group("/api/wallets")
	group.Use(middleware.JWTMiddleware())

	group.GET("", walletController.ListWallets)
	group.GET("/:ownerType/:ownerId", walletController.GetWallet)
	group.GET("/:ownerType/:ownerId/balance", walletController.GetBalance)
	group.GET("/:ownerType/:ownerId/transactions", walletController.GetTransactions)

	admin := group.Group("")
	admin.Use(middleware.RequireRole(models.RoleSuperadmin))
	admin.POST("/:ownerType/:ownerId/adjust", walletController.Adjust)
	admin.POST("/transfer", walletController.Transfer)
}

// RegisterPaymentRoutes sets up fee payment endpoints.
func RegisterPaymentRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	paymentController := controllers.NewPaymentController(db, log)

	group := e.Group("/api/payments")
	group.Use(middleware.JWTMiddleware())

	group.GET("", paymentController.ListPayments)
	group.GET("/:id", paymentController.GetPayment)
	group.POST("", paymentController.CreatePayment, middleware.RequireRole(models.RoleSuperadmin, models.RoleConsultant))

	admin := group.Group("")
	admin.Use(middleware.RequireRole(models.RoleSuperadmin))
	admin.PUT("/:id/status", paymentController.UpdatePaymentStatus)
	admin.DELETE("/:id", paymentController.DeletePayment)
}

// RegisterExpenseRoutes sets up expense tracking. Expenses are an
// internal superadmin concern.
func RegisterExpenseRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	expenseController := controllers.NewExpenseController(db, log)

	group := e.Group("/api/expenses")
	group.Use(middleware.JWTMiddleware())
	group.Use(middleware.RequireRole(models.RoleSuperadmin))

	group.GET("/categories", expenseController.GetCategories)
	group.GET("", expenseController.ListExpenses)
	group.POST("", expenseController.CreateExpense)
	group.PUT("/:id/verify", expenseController.VerifyExpense)
	group.PUT("/:id", expenseController.UpdateExpense)
	group.DELETE("/:id", expenseController.DeleteExpense)
}

// RegisterDashboardRoutes sets up the superadmin dashboard aggregation.
func RegisterDashboardRoutes(e *echo.Echo, dashboard *services.DashboardService) {
	dashboardController := controllers.NewDashboardController(dashboard)

	group := e.Group("/api/dashboard")
	group.Use(middleware.JWTMiddleware())
	group.Use(middleware.RequireRole(models.RoleSuperadmin))

	group.GET("/stats", dashboardController.GetStats)
}
