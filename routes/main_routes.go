package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/services"
	"github.com/campusbridge/admissions_backend/websocket"
)

// SetupRoutes wires the service layer once and registers every route
// group against it.
func SetupRoutes(e *echo.Echo, db *mongo.Database, hub *websocket.Hub, log *logrus.Logger) {
	wallets := services.NewWalletService(db, log)
	agents := services.NewAgentService(db, log)
	commissions := services.NewCommissionService(db, agents, hub, log)
	admissions := services.NewAdmissionService(db, commissions, log)
	dashboard := services.NewDashboardService(db)

	RegisterAuthRoutes(e, db, log)
	RegisterUniversityRoutes(e, db, log)
	RegisterConsultancyRoutes(e, db, agents, log)
	RegisterStudentRoutes(e, db, log)
	RegisterCourseRoutes(e, db, log)
	RegisterAgentRoutes(e, agents, hub)
	RegisterAdmissionRoutes(e, admissions)
	RegisterCommissionRoutes(e, commissions)
	RegisterWalletRoutes(e, wallets, hub)
	RegisterPaymentRoutes(e, db, log)
	RegisterExpenseRoutes(e, db, log)
	RegisterDashboardRoutes(e, dashboard)
	RegisterFileRoutes(e, hub, log)
}
