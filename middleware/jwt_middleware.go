// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// JwtCustomClaims carries the authenticated user's identity plus the
// role-entity references used for role scoping, so consultant and
// university queries need no extra lookup.
type JwtCustomClaims struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	UniversityID  string `json:"universityId,omitempty"`
	ConsultancyID string `json:"consultancyId,omitempty"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware.
func (c JwtCustomClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables.
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// JWTMiddleware returns a configured JWT middleware that stores claims
// in the request context on success.
func JWTMiddleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(GetJWTSecret()),
		Claims:     &JwtCustomClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)

			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
			c.Set("universityId", claims.UniversityID)
			c.Set("consultancyId", claims.ConsultancyID)
		},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid or expired token")
		},
	})
}

// GenerateJWT signs a token for the given user. Tokens expire after
// seven days.
func GenerateJWT(userID, email, role, universityID, consultancyID string) (string, error) {
	claims := &JwtCustomClaims{
		UserID:        userID,
		Email:         email,
		Role:          role,
		UniversityID:  universityID,
		ConsultancyID: consultancyID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// GetUserFromToken extracts claims from the validated request token.
func GetUserFromToken(c echo.Context) *JwtCustomClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}

	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// ExtractUserID returns the authenticated user's id.
func ExtractUserID(c echo.Context) (string, error) {
	if userID, ok := c.Get("userId").(string); ok && userID != "" {
		return userID, nil
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.UserID, nil
	}
	return "", errors.New("invalid token")
}

// ExtractRole returns the authenticated user's role, or "" when absent.
func ExtractRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok && role != "" {
		return role
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.Role
	}
	return ""
}

// ExtractUniversityID returns the university reference from the claims.
func ExtractUniversityID(c echo.Context) string {
	if id, ok := c.Get("universityId").(string); ok {
		return id
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.UniversityID
	}
	return ""
}

// ExtractConsultancyID returns the consultancy reference from the claims.
func ExtractConsultancyID(c echo.Context) string {
	if id, ok := c.Get("consultancyId").(string); ok {
		return id
	}
	if claims := GetUserFromToken(c); claims != nil {
		return claims.ConsultancyID
	}
	return ""
}
