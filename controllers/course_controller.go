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

type CourseController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewCourseController(db *mongo.Database, log *logrus.Logger) *CourseController {
	return &CourseController{DB: db, Log: log}
}

// ListCourses lists courses, scoped to the caller's university when the
// caller is a university user.
func (cc *CourseController) ListCourses(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"code": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if university := c.QueryParam("universityId"); university != "" {
		if id, err := objectIDFromHex(university); err == nil {
			query["universityId"] = id
		}
	}
	query = scopeToRole(c, query, "universityId", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := cc.DB.Collection("courses")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count courses",
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
			Message: "Failed to fetch courses",
		})
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode courses",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    courses,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetCourse returns one course.
func (cc *CourseController) GetCourse(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var course models.Course
	if err := cc.DB.Collection("courses").FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Course not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    course,
	})
}

// CreateCourse adds a course under a university.
func (cc *CourseController) CreateCourse(c echo.Context) error {
	var req models.CourseRequest
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

	universityID, err := objectIDFromHex(req.UniversityID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid university ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := cc.DB.Collection("universities").CountDocuments(ctx, bson.M{"_id": universityID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "University not found",
		})
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	now := time.Now()
	course := models.Course{
		ID:             primitive.NewObjectID(),
		UniversityID:   universityID,
		Name:           utils.SanitizeInput(req.Name),
		Abbreviation:   utils.SanitizeInput(req.Abbreviation),
		Code:           req.Code,
		Status:         status,
		Department:     req.Department,
		DegreeType:     req.DegreeType,
		Duration:       req.Duration,
		ModeOfStudy:    req.ModeOfStudy,
		Fees:           req.Fees,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Description:    utils.SanitizeInput(req.Description),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := cc.DB.Collection("courses").InsertOne(ctx, course); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Message: "Course code already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create course",
		})
	}

	cc.Log.WithFields(logrus.Fields{
		"course": course.Name,
		"code":   course.Code,
	}).Info("course created")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Course created successfully",
		Data:    course,
	})
}

// UpdateCourse edits a course.
func (cc *CourseController) UpdateCourse(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid course ID",
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
	var course models.Course
	err = cc.DB.Collection("courses").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&course)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Course not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Course updated successfully",
		Data:    course,
	})
}

// DeleteCourse removes a course and its streams.
func (cc *CourseController) DeleteCourse(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid course ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.Collection("courses").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete course",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Course not found",
		})
	}

	cc.DB.Collection("streams").DeleteMany(ctx, bson.M{"courseId": id})

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Course deleted successfully",
	})
}
