// internal/middleware/auth.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readloop/bookreview-backend/internal/utils"
)

// AuthContext is the request-scoped identity produced by AuthRequired and
// passed to handlers in place of loose context keys or any global session
// state. The admin flag reflects the token at issuance time.
type AuthContext struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
	IssuedAt time.Time
}

const authContextKey = "authContext"

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		authCtx, ok := buildAuthContext(parts[1])
		if !ok {
			utils.UnauthorizedResponse(c, "Token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(authContextKey, authCtx)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		if !ok || !authCtx.IsAdmin {
			utils.ForbiddenResponse(c, "Admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches an AuthContext when a valid token is present and
// passes the request through otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if authCtx, ok := buildAuthContext(parts[1]); ok {
			c.Set(authContextKey, authCtx)
		}
		c.Next()
	}
}

func GetAuthContext(c *gin.Context) (*AuthContext, bool) {
	value, exists := c.Get(authContextKey)
	if !exists {
		return nil, false
	}
	authCtx, ok := value.(*AuthContext)
	return authCtx, ok
}

func buildAuthContext(token string) (*AuthContext, bool) {
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &AuthContext{
		UserID:   userID,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
		IssuedAt: issuedAt,
	}, true
}
