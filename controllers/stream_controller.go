package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/utils"
)

type StreamController struct {
	DB *mongo.Database
}

func NewStreamController(db *mongo.Database) *StreamController {
	return &StreamController{DB: db}
}

// ListByCourse lists a course's streams.
func (sc *StreamController) ListByCourse(c echo.Context) error {
	courseID, err := objectIDParam(c, "courseId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := sc.DB.Collection("streams").Find(ctx, bson.M{"courseId": courseID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to fetch streams",
		})
	}
	defer cursor.Close(ctx)

	streams := []models.Stream{}
	if err := cursor.All(ctx, &streams); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode streams",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    streams,
	})
}

// CreateStream adds a specialization track under a course.
func (sc *StreamController) CreateStream(c echo.Context) error {
	var req models.StreamRequest
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

	courseID, err := objectIDFromHex(req.CourseID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := sc.DB.Collection("courses").CountDocuments(ctx, bson.M{"_id": courseID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Course not found",
		})
	}

	now := time.Now()
	stream := models.Stream{
		ID:             primitive.NewObjectID(),
		CourseID:       courseID,
		Name:           utils.SanitizeInput(req.Name),
		Description:    utils.SanitizeInput(req.Description),
		Fees:           req.Fees,
		Duration:       req.Duration,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := sc.DB.Collection("streams").InsertOne(ctx, stream); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create stream",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Stream created successfully",
		Data:    stream,
	})
}

// UpdateStream edits a stream.
func (sc *StreamController) UpdateStream(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid stream ID",
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
	fields["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var stream models.Stream
	err = sc.DB.Collection("streams").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&stream)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Stream not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Stream updated successfully",
		Data:    stream,
	})
}

// DeleteStream removes a stream.
func (sc *StreamController) DeleteStream(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid stream ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("streams").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete stream",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Stream not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Stream deleted successfully",
	})
}
