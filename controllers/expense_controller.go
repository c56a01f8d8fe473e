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
	"github.com/campusbridge/admissions_backend/utils"
)

type ExpenseController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewExpenseController(db *mongo.Database, log *logrus.Logger) *ExpenseController {
	return &ExpenseController{DB: db, Log: log}
}

// ListExpenses lists expenses with optional category, status, and date
// range filters.
func (ec *ExpenseController) ListExpenses(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if category := c.QueryParam("category"); category != "" {
		query["category"] = category
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	dateRange := bson.M{}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			dateRange["$gte"] = t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			dateRange["$lt"] = t.Add(24 * time.Hour)
		}
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := ec.DB.Collection("expenses")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count expenses",
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
			Message: "Failed to fetch expenses",
		})
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode expenses",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    expenses,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// CreateExpense records an operating expense.
func (ec *ExpenseController) CreateExpense(c echo.Context) error {
	var req models.ExpenseRequest
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

	if !models.IsValidExpenseCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid expense category",
		})
	}

	status := req.Status
	if status == "" {
		status = models.ExpensePending
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	expense := models.Expense{
		ID:          primitive.NewObjectID(),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: utils.SanitizeInput(req.Description),
		Date:        date,
		Status:      status,
		ReceiptURL:  req.ReceiptURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ec.DB.Collection("expenses").InsertOne(ctx, expense); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create expense",
		})
	}

	ec.Log.WithFields(logrus.Fields{
		"category": expense.Category,
		"amount":   expense.Amount,
	}).Info("expense recorded")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Expense recorded successfully",
		Data:    expense,
	})
}

// VerifyExpense marks an expense verified or rejected, stamping the
// verifier.
func (ec *ExpenseController) VerifyExpense(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid expense ID",
		})
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=verified rejected"`
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
	if userID, err := middleware.ExtractUserID(c); err == nil {
		if uid, err := objectIDFromHex(userID); err == nil {
			now := time.Now()
			update["verifiedBy"] = uid
			update["verifiedAt"] = now
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var expense models.Expense
	err = ec.DB.Collection("expenses").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&expense)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Expense verification updated",
		Data:    expense,
	})
}

// UpdateExpense edits an expense.
func (ec *ExpenseController) UpdateExpense(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid expense ID",
		})
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if category, ok := fields["category"].(string); ok && !models.IsValidExpenseCategory(category) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid expense category",
		})
	}

	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "createdAt")
	delete(fields, "verifiedBy")
	delete(fields, "verifiedAt")
	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var expense models.Expense
	err = ec.DB.Collection("expenses").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&expense)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Expense updated successfully",
		Data:    expense,
	})
}

// DeleteExpense removes an expense.
func (ec *ExpenseController) DeleteExpense(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid expense ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ec.DB.Collection("expenses").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete expense",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Expense deleted successfully",
	})
}

// GetCategories returns the accepted expense categories.
func (ec *ExpenseController) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    models.ExpenseCategories,
	})
}
