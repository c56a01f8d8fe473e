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

	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/models"
)

type PaymentController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewPaymentController(db *mongo.Database, log *logrus.Logger) *PaymentController {
	return &PaymentController{DB: db, Log: log}
}

// ListPayments lists fee payments with optional status and method
// filters.
func (pc *PaymentController) ListPayments(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if method := c.QueryParam("method"); method != "" {
		query["method"] = method
	}
	if admission := c.QueryParam("admission"); admission != "" {
		if id, err := objectIDFromHex(admission); err == nil {
			query["admission"] = id
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := pc.DB.Collection("payments")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count payments",
		})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to fetch payments",
		})
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode payments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    payments,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetPayment returns one payment.
func (pc *PaymentController) GetPayment(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid payment ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var payment models.Payment
	if err := pc.DB.Collection("payments").FindOne(ctx, bson.M{"_id": id}).Decode(&payment); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Payment not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    payment,
	})
}

// CreatePayment records a fee payment against an admission. The student
// name is denormalized at creation time.
func (pc *PaymentController) CreatePayment(c echo.Context) error {
	var req models.PaymentRequest
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

	admissionID, err := objectIDFromHex(req.Admission)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid admission ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admission models.Admission
	if err := pc.DB.Collection("admissions").FindOne(ctx, bson.M{"_id": admissionID}).Decode(&admission); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Admission not found",
		})
	}

	studentName := ""
	var student models.Student
	if err := pc.DB.Collection("students").FindOne(ctx, bson.M{"_id": admission.StudentID}).Decode(&student); err == nil {
		studentName = student.Name
	}

	status := req.Status
	if status == "" {
		status = models.PaymentPending
	}

	now := time.Now()
	payment := models.Payment{
		ID:          primitive.NewObjectID(),
		Admission:   admissionID,
		StudentName: studentName,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      status,
		Date:        now,
		Reference:   req.Reference,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := pc.DB.Collection("payments").InsertOne(ctx, payment); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create payment",
		})
	}

	pc.Log.WithFields(logrus.Fields{
		"admission": admissionID.Hex(),
		"amount":    req.Amount,
		"method":    req.Method,
	}).Info("payment recorded")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Payment recorded successfully",
		Data:    payment,
	})
}

// UpdatePaymentStatus transitions a payment's status. Completing a
// payment stamps the approver.
func (pc *PaymentController) UpdatePaymentStatus(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid payment ID",
		})
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending completed failed"`
	}
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

	update := bson.M{
		"status":    req.Status,
		"updatedAt": time.Now(),
	}
	if req.Status == models.PaymentCompleted {
		if userID, err := middleware.ExtractUserID(c); err == nil {
			if uid, err := objectIDFromHex(userID); err == nil {
				now := time.Now()
				update["approvedBy"] = uid
				update["approvedAt"] = now
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var payment models.Payment
	err = pc.DB.Collection("payments").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&payment)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Payment not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment status updated",
		Data:    payment,
	})
}

// DeletePayment removes a payment record.
func (pc *PaymentController) DeletePayment(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid payment ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.DB.Collection("payments").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete payment",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Payment not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment deleted successfully",
	})
}
