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

type UniversityController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewUniversityController(db *mongo.Database, log *logrus.Logger) *UniversityController {
	return &UniversityController{DB: db, Log: log}
}

// ListUniversities lists universities with optional search.
func (uc *UniversityController) ListUniversities(c echo.Context) error {
	page, limit := parsePagination(c)

	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"abbreviation": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if uniType := c.QueryParam("type"); uniType != "" {
		query["type"] = uniType
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := uc.DB.Collection("universities")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to count universities",
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
			Message: "Failed to fetch universities",
		})
	}
	defer cursor.Close(ctx)

	universities := []models.University{}
	if err := cursor.All(ctx, &universities); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to decode universities",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    universities,
		Pagination: &models.Pagination{
			Total: total,
			Page:  page,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetUniversity returns one university.
func (uc *UniversityController) GetUniversity(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid university ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var university models.University
	if err := uc.DB.Collection("universities").FindOne(ctx, bson.M{"_id": id}).Decode(&university); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "University not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    university,
	})
}

// CreateUniversity adds a new university.
func (uc *UniversityController) CreateUniversity(c echo.Context) error {
	var req models.UniversityRequest
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

	now := time.Now()
	university := models.University{
		ID:              primitive.NewObjectID(),
		Name:            utils.SanitizeInput(req.Name),
		Abbreviation:    utils.SanitizeInput(req.Abbreviation),
		EstablishedYear: req.EstablishedYear,
		Type:            req.Type,
		Facilities:      req.Facilities,
		Description:     utils.SanitizeInput(req.Description),
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Address:         utils.SanitizeInput(req.Address),
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		IFSCCode:        req.IFSCCode,
		Branch:          req.Branch,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := uc.DB.Collection("universities").InsertOne(ctx, university); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create university",
		})
	}

	uc.Log.WithField("university", university.Name).Info("university created")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "University created successfully",
		Data:    university,
	})
}

// UpdateUniversity edits a university.
func (uc *UniversityController) UpdateUniversity(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid university ID",
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
	var university models.University
	err = uc.DB.Collection("universities").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		opts,
	).Decode(&university)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "University not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "University updated successfully",
		Data:    university,
	})
}

// DeleteUniversity removes a university.
func (uc *UniversityController) DeleteUniversity(c echo.Context) error {
	id, err := objectIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid university ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := uc.DB.Collection("universities").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to delete university",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "University not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "University deleted successfully",
	})
}
