package middlewares

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.RespondError(c, fmt.Errorf("authorization header missing: %w", utils.ErrUnauthorized))
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth records the caller when a valid token is present and otherwise lets the
// request through anonymously.
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := tokens.ParseToken(tokenString); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// RequireUserID is CurrentUserID for handlers behind AuthMiddleware.
func RequireUserID(c *gin.Context) (uint, error) {
	id, ok := CurrentUserID(c)
	if !ok {
		return 0, errors.Join(errors.New("user id not found in context"), utils.ErrUnauthorized)
	}
	return id, nil
}
