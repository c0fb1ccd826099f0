package middlewares

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// RequireStaff lets staff, managers and admins through. Must run after AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.RespondError(c, fmt.Errorf("no role in token: %w", utils.ErrUnauthorized))
			c.Abort()
			return
		}

		name, _ := role.(string)
		if !models.UserRole(name).IsStaff() {
			utils.RespondError(c, fmt.Errorf("staff access required: %w", utils.ErrForbidden))
			c.Abort()
			return
		}

		c.Next()
	}
}
