package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/services"
)

type AdmissionController struct {
	Admissions *services.AdmissionService
}

func NewAdmissionController(admissions *services.AdmissionService) *AdmissionController {
	return &AdmissionController{Admissions: admissions}
}

func admissionErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateAdmission):
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Student already has an active admission for this course and university",
		})
	case services.IsNotFound(err):
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Admission operation failed",
	})
}

// ListAdmissions lists admissions scoped to the caller's role.
func (ac *AdmissionController) ListAdmissions(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if student := c.QueryParam("studentId"); student != "" {
		if id, err := objectIDFromHex(student); err == nil {
			query["studentId"] = id
		}
	}
	query = scopeToRole(c, query, "universityId", "consultancyId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admissions, pagination, err := ac.Admissions.List(ctx, query, page, limit)
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success:    true,
		Data:       admissions,
		Pagination: &pagination,
	})
}

// GetAdmission returns a single admission.
func (ac *AdmissionController) GetAdmission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid admission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admission, err := ac.Admissions.GetByID(ctx, id)
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    admission,
	})
}

// CreateAdmission records a new admission. Creating one directly in an
// earning status also creates its commission.
func (ac *AdmissionController) CreateAdmission(c echo.Context) error {
	var req models.CreateAdmissionRequest
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

	admission, err := ac.Admissions.Create(ctx, req)
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Admission created successfully",
		Data:    admission,
	})
}

// UpdateAdmission edits an admission. A status change into an earning
// state triggers commission creation exactly once.
func (ac *AdmissionController) UpdateAdmission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid admission ID",
		})
	}

	var req models.UpdateAdmissionRequest
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

	admission, err := ac.Admissions.Update(ctx, id, req)
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Admission updated successfully",
		Data:    admission,
	})
}

// DeleteAdmission removes an admission.
func (ac *AdmissionController) DeleteAdmission(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid admission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ac.Admissions.Delete(ctx, id); err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Admission deleted successfully",
	})
}

// GetStatistics folds admission counts and fee totals, scoped to the
// caller's role.
func (ac *AdmissionController) GetStatistics(c echo.Context) error {
	match := scopeToRole(c, bson.M{}, "universityId", "consultancyId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := ac.Admissions.Statistics(ctx, match)
	if err != nil {
		return admissionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}
