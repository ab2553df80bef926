package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelops/guest-services-backend/internal/auth"
	"github.com/hotelops/guest-services-backend/internal/pkg/response"
	"github.com/hotelops/guest-services-backend/internal/purchase"
)

type Handler struct {
	service purchase.Service
}

func NewHandler(service purchase.Service) *Handler {
	return &Handler{service: service}
}

// Create handles the guest self-service booking flow. Identity and stay
// bounds come from the guest token.
func (h *Handler) Create(c *gin.Context) {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var body CreatePurchaseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	guestID := auth.GetGuestID(c)
	if guestID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), purchase.Request{
		GuestID:       guestID,
		ServiceID:     serviceID,
		ReservationID: auth.GetReservationID(c),
		Stay:          auth.GetStayWindow(c),
		Dates:         body.ParsedDates(),
		StartTime:     body.Time,
		Quantity:      body.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	writeResult(c, result)
}

// CreateAssisted handles the staff-assisted booking flow, where the operator
// acts on a guest's behalf and supplies the reservation context explicitly.
func (h *Handler) CreateAssisted(c *gin.Context) {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var body StaffPurchaseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Submit(c.Request.Context(), purchase.Request{
		GuestID:       body.GuestID,
		ServiceID:     serviceID,
		ReservationID: body.ReservationID,
		Stay:          body.Stay(),
		Dates:         body.ParsedDates(),
		StartTime:     body.Time,
		Quantity:      body.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	writeResult(c, result)
}

// writeResult renders per-date outcomes: 201 when every purchase landed,
// 207 when only part of the date set did.
func writeResult(c *gin.Context, result *purchase.Result) {
	resp := NewPurchaseResponse(result)
	if resp.AllSucceeded {
		c.JSON(http.StatusCreated, resp)
		return
	}
	c.JSON(http.StatusMultiStatus, resp)
}
