package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

// GetStats returns the admin dashboard aggregation: entity counts,
// collected fees with the fixed profit split, wallet totals, and today's
// verified expenses.
func (dc *DashboardController) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	stats, err := dc.Dashboard.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to build dashboard statistics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}
