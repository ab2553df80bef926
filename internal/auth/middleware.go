package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GuestRequired is a Gin middleware that validates the guest JWT from
// Authorization: Bearer <token> and stores the claims in the request context.
func GuestRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set("guestID", claims.GuestID)
		c.Set("reservationID", claims.ReservationID)
		c.Set("stayStart", claims.StayStart)
		c.Set("stayEnd", claims.StayEnd)

		c.Next()
	}
}
