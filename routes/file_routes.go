package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/campusbridge/admissions_backend/controllers"
	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/websocket"
)

// RegisterFileRoutes sets up file uploads, static serving, and the
// finance event stream.
func RegisterFileRoutes(e *echo.Echo, hub *websocket.Hub, log *logrus.Logger) {
	uploadController := controllers.NewUploadController(log)

	uploads := e.Group("/api/uploads")
	uploads.Use(middleware.JWTMiddleware())
	uploads.POST("", uploadController.Upload)

	// Serve stored files
	e.Static("/uploads", "uploads")

	// Live finance events for connected dashboards
	ws := e.Group("/api/ws")
	ws.Use(middleware.JWTMiddleware())
	ws.GET("/events", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub, middleware.ExtractRole(c))
	})
}
