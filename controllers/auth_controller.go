package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusbridge/admissions_backend/config"
	"github.com/campusbridge/admissions_backend/middleware"
	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/utils"
)

type AuthController struct {
	DB  *mongo.Database
	Log *logrus.Logger
}

func NewAuthController(db *mongo.Database, log *logrus.Logger) *AuthController {
	return &AuthController{DB: db, Log: log}
}

// Register creates a user account plus its role entity. A university
// registration creates a university document; a consultant registration
// creates a consultancy with the submitted commission policy.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
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

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.DB.Collection("users").CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to check existing users",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Email already registered",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to process password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		Role:      req.Role,
		Name:      utils.SanitizeInput(req.Name),
		Phone:     req.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch req.Role {
	case models.RoleUniversity:
		university := models.University{
			ID:           primitive.NewObjectID(),
			Name:         user.Name,
			Abbreviation: utils.SanitizeInput(req.Abbreviation),
			ContactEmail: email,
			ContactPhone: req.Phone,
			Address:      utils.SanitizeInput(req.Address),
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := ac.DB.Collection("universities").InsertOne(ctx, university); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to create university",
			})
		}
		user.UniversityID = &university.ID
	case models.RoleConsultant:
		commissionType := req.CommissionType
		if commissionType == "" {
			commissionType = models.CommissionPercentage
		}
		consultancy := models.Consultancy{
			ID:              primitive.NewObjectID(),
			Name:            user.Name,
			Email:           email,
			Phone:           req.Phone,
			CommissionType:  commissionType,
			CommissionValue: req.CommissionValue,
			Status:          models.ConsultancyActive,
			Address:         utils.SanitizeInput(req.Address),
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if _, err := ac.DB.Collection("consultancies").InsertOne(ctx, consultancy); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to create consultancy",
			})
		}
		user.ConsultancyID = &consultancy.ID
	}

	if _, err := ac.DB.Collection("users").InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to create user",
		})
	}

	ac.Log.WithFields(logrus.Fields{
		"email": email,
		"role":  req.Role,
	}).Info("user registered")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Registration successful",
		Data:    user,
	})
}

// Login verifies credentials and issues a JWT carrying the user's role
// and entity references.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
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

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = ac.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Account is deactivated",
		})
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	universityID := ""
	if user.UniversityID != nil {
		universityID = user.UniversityID.Hex()
	}
	consultancyID := ""
	if user.ConsultancyID != nil {
		consultancyID = user.ConsultancyID.Hex()
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role, universityID, consultancyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	now := time.Now()
	ac.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"lastLogin": now}},
	)

	ac.Log.WithFields(logrus.Fields{
		"email": email,
		"role":  user.Role,
	}).Info("user logged in")

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// GetMe returns the authenticated user's profile.
func (ac *AuthController) GetMe(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid token",
		})
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := ac.DB.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    user,
	})
}

// UpdatePassword changes the authenticated user's password after
// verifying the current one.
func (ac *AuthController) UpdatePassword(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid token",
		})
	}

	var req models.UpdatePasswordRequest
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

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := ac.DB.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Current password is incorrect",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to process password",
		})
	}

	_, err = ac.DB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to update password",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password updated successfully",
	})
}

// SendOTP emails a one-time code for password recovery.
func (ac *AuthController) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
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

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.DB.Collection("users").CountDocuments(ctx, bson.M{"email": email})
	if err != nil || count == 0 {
		// Do not reveal whether the account exists
		return c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "If the account exists, a verification code has been sent",
		})
	}

	otp, err := utils.GenerateSecureOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate verification code",
		})
	}

	if err := utils.StoreOTP(ctx, config.GetRedisClient(), email, otp); err != nil {
		ac.Log.WithError(err).Error("failed to store OTP")
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Success: false,
			Message: "Verification service unavailable",
		})
	}

	if err := utils.SendOTPEmail(email, otp); err != nil {
		ac.Log.WithError(err).Error("failed to send OTP email")
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send verification code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "If the account exists, a verification code has been sent",
	})
}

// VerifyOTPAndResetPassword checks the emailed code and sets a new
// password.
func (ac *AuthController) VerifyOTPAndResetPassword(c echo.Context) error {
	var req struct {
		Email       string `json:"email" validate:"required,email"`
		OTP         string `json:"otp" validate:"required,len=6"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
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

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	rdb := config.GetRedisClient()
	if err := utils.ValidateOTPAttempts(email, rdb); err != nil {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: "Too many attempts. Try again later",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok, err := utils.VerifyOTP(ctx, rdb, email, req.OTP)
	if err != nil {
		ac.Log.WithError(err).Error("OTP verification failed")
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Success: false,
			Message: "Verification service unavailable",
		})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid or expired verification code",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to process password",
		})
	}

	result, err := ac.DB.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()}},
	)
	if err != nil || result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password reset successful",
	})
}
