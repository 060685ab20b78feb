package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		// Validasi token
		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("staff_id", claims.StaffID)
		c.Set("hotel_id", claims.HotelID)

		c.Next()
	}
}
