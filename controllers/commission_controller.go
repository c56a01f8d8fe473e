package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
)

type CommissionController struct {
	Commissions *services.CommissionService
}

func NewCommissionController(commissions *services.CommissionService) *CommissionController {
	return &CommissionController{Commissions: commissions}
}

func commissionErrorResponse(c echo.Context, err error) error {
	if services.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Commission operation failed",
	})
}

// ListCommissions returns commission transactions scoped to the caller's
// role and filtered by optional query parameters.
func (cc *CommissionController) ListCommissions(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if consultancy := c.QueryParam("consultancyId"); consultancy != "" {
		if id, err := objectIDFromHex(consultancy); err == nil {
			query["consultancyId"] = id
		}
	}
	if university := c.QueryParam("universityId"); university != "" {
		if id, err := objectIDFromHex(university); err == nil {
			query["universityId"] = id
		}
	}
	query = scopeToRole(c, query, "universityId", "consultancyId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transactions, pagination, err := cc.Commissions.List(ctx, query, page, limit)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       transactions,
		Pagination: &pagination,
	})
}

// GetCommission returns a single commission transaction.
func (cc *CommissionController) GetCommission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid commission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := cc.Commissions.GetByID(ctx, id)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    tx,
	})
}

// CreateCommission records a new commission transaction. The amount is
// calculated once from the submitted policy and never recomputed.
func (cc *CommissionController) CreateCommission(c echo.Context) error {
	var req models.CreateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tx, err := cc.Commissions.Create(ctx, req)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Commission created successfully",
		Data:    tx,
	})
}

// UpdateCommissionStatus transitions a commission's status. Moving into
// "Paid" triggers the one-time agent distribution.
func (cc *CommissionController) UpdateCommissionStatus(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid commission ID",
		})
	}

	var req models.UpdateCommissionStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tx, err := cc.Commissions.UpdateStatus(ctx, id, req)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Commission status updated",
		Data:    tx,
	})
}

// UpdateCommission edits non-status fields of a commission.
func (cc *CommissionController) UpdateCommission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid commission ID",
		})
	}

	var fields bson.M
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := cc.Commissions.Update(ctx, id, fields)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Commission updated successfully",
		Data:    tx,
	})
}

// DeleteCommission removes a commission transaction.
func (cc *CommissionController) DeleteCommission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid commission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := cc.Commissions.Delete(ctx, id); err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Commission deleted successfully",
	})
}

// GetStatistics folds commission totals grouped by status, scoped to the
// caller's role.
func (cc *CommissionController) GetStatistics(c echo.Context) error {
	match := scopeToRole(c, bson.M{}, "universityId", "consultancyId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := cc.Commissions.Statistics(ctx, match)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}

// GetByConsultancy lists commissions for one consultancy.
func (cc *CommissionController) GetByConsultancy(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	page, limit := parsePagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transactions, pagination, err := cc.Commissions.List(ctx, bson.M{"consultancyId": id}, page, limit)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       transactions,
		Pagination: &pagination,
	})
}

// GetByUniversity lists commissions for one university.
func (cc *CommissionController) GetByUniversity(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid university ID",
		})
	}

	page, limit := parsePagination(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transactions, pagination, err := cc.Commissions.List(ctx, bson.M{"universityId": id}, page, limit)
	if err != nil {
		return commissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       transactions,
		Pagination: &pagination,
	})
}
