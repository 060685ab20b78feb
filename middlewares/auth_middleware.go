package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-ops-app/utils"
)

// AuthMiddleware memvalidasi JWT dari header Authorization, query param,
// atau session cookie (dipakai dashboard staff).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token != "" {
			if !strings.HasPrefix(token, "Bearer ") {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
				c.Abort()
				return
			}
			token = strings.TrimPrefix(token, "Bearer ")
		}

		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			// Fallback ke session cookie hasil login PIN
			if cookie, err := c.Cookie("session"); err == nil {
				token = cookie
			}
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token not found"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.StaffID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid staff ID in token"))
			c.Abort()
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("hotel_id", claims.HotelID)
		c.Set("role", claims.Role)
		c.Set("access_type", claims.AccessType)
		c.Set("staff_name", claims.Name)

		c.Next()
	}
}
