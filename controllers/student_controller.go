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

type StudentController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewStudentController(db *mongo.Database, log *logrus.Logger) *StudentController {
	return &StudentController{DB: db, Log: log}
}

// ListStudents lists students scoped to the caller's role, with optional
// search and status filters.
func (sc *StudentController) ListStudents(c echo.Context) error {
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
	query = scopeToRole(c, query, "universityId", "consultancyId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := sc.DB.Collection("students")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count students",
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
			Message: "Failed to fetch students",
		})
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode students",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    students,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetStudent returns one student.
func (sc *StudentController) GetStudent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid student ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var student models.Student
	if err := sc.DB.Collection("students").FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Student not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    student,
	})
}

// CreateStudent registers a student against a course, consultancy, and
// university.
func (sc *StudentController) CreateStudent(c echo.Context) error {
	var req models.StudentRequest
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
	consultancyID, err := objectIDFromHex(req.ConsultancyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid consultancy ID",
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

	// Denormalize course and consultancy names for list views
	var course models.Course
	if err := sc.DB.Collection("courses").FindOne(ctx, bson.M{"_id": courseID}).Decode(&course); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Course not found",
		})
	}
	var consultancy models.Consultancy
	if err := sc.DB.Collection("consultancies").FindOne(ctx, bson.M{"_id": consultancyID}).Decode(&consultancy); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Consultancy not found",
		})
	}

	status := req.Status
	if status == "" {
		status = models.StudentPending
	}

	now := time.Now()
	student := models.Student{
		ID:              primitive.NewObjectID(),
		Name:            utils.SanitizeInput(req.Name),
		Email:           req.Email,
		Phone:           req.Phone,
		CourseID:        courseID,
		ConsultancyID:   consultancyID,
		UniversityID:    universityID,
		Status:          status,
		AppliedDate:     now,
		Gender:          req.Gender,
		Address:         utils.SanitizeInput(req.Address),
		CourseName:      course.Name,
		ConsultancyName: consultancy.Name,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := sc.DB.Collection("students").InsertOne(ctx, student); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create student",
		})
	}

	// Keep the consultancy's student counter in step
	sc.DB.Collection("consultancies").UpdateOne(ctx,
		bson.M{"_id": consultancyID},
		bson.M{"$inc": bson.M{"studentsCount": 1}},
	)

	sc.Log.WithFields(logrus.Fields{
		"student":     student.Name,
		"consultancy": consultancy.Name,
	}).Info("student created")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Student created successfully",
		Data:    student,
	})
}

// UpdateStudent edits a student.
func (sc *StudentController) UpdateStudent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid student ID",
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
	var student models.Student
	err = sc.DB.Collection("students").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&student)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Student not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Student updated successfully",
		Data:    student,
	})
}

// DeleteStudent removes a student and decrements the consultancy counter.
func (sc *StudentController) DeleteStudent(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid student ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var student models.Student
	if err := sc.DB.Collection("students").FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Student not found",
		})
	}

	if _, err := sc.DB.Collection("students").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete student",
		})
	}

	sc.DB.Collection("consultancies").UpdateOne(ctx,
		bson.M{"_id": student.ConsultancyID},
		bson.M{"$inc": bson.M{"studentsCount": -1}},
	)

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Student deleted successfully",
	})
}
