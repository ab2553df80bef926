package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
)

// GetGuestID returns the authenticated guest's ID or empty string.
func GetGuestID(c *gin.Context) string {
	return getString(c, "guestID")
}

// GetReservationID returns the guest's reservation ID or empty string.
func GetReservationID(c *gin.Context) string {
	return getString(c, "reservationID")
}

// GetStayWindow returns the guest's stay bounds from the token claims, or
// nil when the token carries no reservation context yet (the rolling default
// window applies in that case).
func GetStayWindow(c *gin.Context) *availability.StayWindow {
	start, err := request.ParseDate(getString(c, "stayStart"))
	if err != nil {
		return nil
	}
	end, err := request.ParseDate(getString(c, "stayEnd"))
	if err != nil {
		return nil
	}
	return &availability.StayWindow{Start: start, End: end}
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
