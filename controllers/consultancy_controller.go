package controllers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/utils"
)

type ConsultancyController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewConsultancyController(db *mongo.Database, log *logrus.Logger) *ConsultancyController {
	return &ConsultancyController{DB: db, Log: log}
}

// ListConsultancies lists consultancies with optional search and status
// filters.
func (cc *ConsultancyController) ListConsultancies(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := cc.DB.Collection("consultancies")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count consultancies",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to fetch consultancies",
		})
	}
	defer cursor.Close(ctx)

	consultancies := []models.Consultancy{}
	if err := cursor.All(ctx, &consultancies); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode consultancies",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    consultancies,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetConsultancy returns one consultancy.
func (cc *ConsultancyController) GetConsultancy(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var consultancy models.Consultancy
	if err := cc.DB.Collection("consultancies").FindOne(ctx, bson.M{"_id": id}).Decode(&consultancy); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Consultancy not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    consultancy,
	})
}

// CreateConsultancy adds a new consultancy with its commission policy.
func (cc *ConsultancyController) CreateConsultancy(c echo.Context) error {
	var req models.ConsultancyRequest
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

	status := req.Status
	if status == "" {
		status = models.ConsultancyActive
	}

	now := time.Now()
	consultancy := models.Consultancy{
		ID:              primitive.NewObjectID(),
		Name:            utils.SanitizeInput(req.Name),
		Email:           req.Email,
		Phone:           req.Phone,
		CommissionType:  req.CommissionType,
		CommissionValue: req.CommissionValue,
		Status:          status,
		Address:         utils.SanitizeInput(req.Address),
		City:            utils.SanitizeInput(req.City),
		State:           utils.SanitizeInput(req.State),
		Pincode:         req.Pincode,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := cc.DB.Collection("consultancies").InsertOne(ctx, consultancy); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create consultancy",
		})
	}

	cc.Log.WithField("consultancy", consultancy.Name).Info("consultancy created")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Consultancy created successfully",
		Data:    consultancy,
	})
}

// UpdateConsultancy edits a consultancy.
func (cc *ConsultancyController) UpdateConsultancy(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "createdAt")
	// Earnings counters are maintained by the commission flow only
	delete(fields, "totalCommission")
	delete(fields, "studentsCount")
	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var consultancy models.Consultancy
	err = cc.DB.Collection("consultancies").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&consultancy)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Consultancy not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Consultancy updated successfully",
		Data:    consultancy,
	})
}

// DeleteConsultancy removes a consultancy.
func (cc *ConsultancyController) DeleteConsultancy(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("consultancies").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete consultancy",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Consultancy not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Consultancy deleted successfully",
	})
}

// GetConsultancyStats summarises a consultancy's pipeline: student count
// plus pending and paid commission totals.
func (cc *ConsultancyController) GetConsultancyStats(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	students, err := cc.DB.Collection("students").CountDocuments(ctx, bson.M{"consultancyId": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count students",
		})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"consultancyId": id}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"pending": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.CommissionPending}},
				"$calculatedCommission", 0,
			}}},
			"paid": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.CommissionPaid}},
				"$calculatedCommission", 0,
			}}},
		}}},
	}

	cursor, err := cc.DB.Collection("commissionTransactions").Aggregate(ctx, pipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to aggregate commissions",
		})
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Pending float64 `bson:"pending"`
		Paid    float64 `bson:"paid"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode commission totals",
		})
	}

	stats := models.ConsultancyStats{StudentsCount: students}
	if len(rows) > 0 {
		stats.PendingCommission = rows[0].Pending
		stats.PaidCommission = rows[0].Paid
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    stats,
	})
}
