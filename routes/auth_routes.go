package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/controllers"
	"github.com/campusbridge/admissions_backend/middleware"
)

// RegisterAuthRoutes sets up registration, login, and password recovery.
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Database, log *logrus.Logger) {
	authController := controllers.NewAuthController(db, log)

	auth := e.Group("/api/auth")

	// Public routes
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/send-otp", authController.SendOTP)
	auth.POST("/verify-otp-reset", authController.VerifyOTPAndResetPassword)

	// Protected routes
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", authController.GetMe)
	protected.PUT("/password", authController.UpdatePassword)
}
