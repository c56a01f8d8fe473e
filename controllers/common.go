package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/models"
)

// parsePagination reads ?page= and ?limit= with sane defaults.
func parsePagination(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// objectIDParam parses a path parameter as a Mongo ObjectID.
func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param(name))
}

func objectIDFromHex(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// scopeToRole narrows a query to the caller's own entity. Superadmins see
// everything; university users see rows for their university;
// consultants see rows for their consultancy.
func scopeToRole(c echo.Context, query bson.M, universityField, consultancyField string) bson.M {
	switch middleware.ExtractRole(c) {
	case models.RoleUniversity:
		if universityField != "" {
			if id, err := primitive.ObjectIDFromHex(middleware.ExtractUniversityID(c)); err == nil {
				query[universityField] = id
			}
		}
	case models.RoleConsultant:
		if consultancyField != "" {
			if id, err := primitive.ObjectIDFromHex(middleware.ExtractConsultancyID(c)); err == nil {
				query[consultancyField] = id
			}
		}
	}
	return query
}
