package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/odemir/campusclubs/internal/app/models"
	"github.com/odemir/campusclubs/internal/app/models/dto"
	"github.com/odemir/campusclubs/internal/app/repositories"
	"github.com/odemir/campusclubs/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "currentUser"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth middleware for JWT token validation. The full user record is loaded
// and attached to the context; downstream authorization needs the staff and
// superuser flags, which the token does not carry.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errDetail := m.authenticate(c)
		if errDetail != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errDetail))
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalJWTAuth attaches the user when a valid token is present and lets
// the request through anonymously otherwise. Used by listings whose content
// depends on who is asking.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		user, errDetail := m.authenticate(c)
		if errDetail != nil {
			// A presented but invalid token is rejected rather than silently
			// downgraded to anonymous.
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errDetail))
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireCollegeAdmin rejects callers that are not college admins. Must run
// after JWTAuth.
func (m *AuthMiddleware) RequireCollegeAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		if !user.IsCollegeAdmin() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "College admin privileges required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*models.User, *dto.ErrorDetail) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Authorization header missing")
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("Invalid token format")
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Authentication failed").
				WithDetails("Token has expired")
		}
		return nil, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").
			WithDetails("Invalid token")
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed").
			WithDetails("User no longer exists")
	}
	if !user.IsActive {
		return nil, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication failed").
			WithDetails("Account is disabled")
	}
	return user, nil
}

// CurrentUser returns the authenticated user attached by JWTAuth or
// OptionalJWTAuth, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
