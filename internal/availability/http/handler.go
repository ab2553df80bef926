package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelops/guest-services-backend/internal/auth"
	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/catalog"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
	"github.com/hotelops/guest-services-backend/internal/pkg/response"
)

type Handler struct {
	resolver availability.Service
	catalog  catalog.Repository
}

func NewHandler(resolver availability.Service, cat catalog.Repository) *Handler {
	return &Handler{resolver: resolver, catalog: cat}
}

// Get returns the classified availability for a service, grouped by day.
func (h *Handler) Get(c *gin.Context) {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var query AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := query.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.catalog.GetByID(c.Request.Context(), serviceID); err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.resolve(c, serviceID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(snap))
}

// Best returns the highest-capacity available slot for one date.
func (h *Handler) Best(c *gin.Context) {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var query BestSlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	date, err := request.ParseDate(query.Date)
	if err != nil {
		response.Error(c, availability.ErrInvalidDate)
		return
	}

	snap, err := h.resolve(c, serviceID, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := BestSlotResponse{Date: query.Date}
	if best := snap.Days.BestSlotFor(date); best != nil {
		slot := NewSlotResponse(*best)
		resp.Slot = &slot
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) resolve(c *gin.Context, serviceID string, query *AvailabilityQuery) (*availability.Snapshot, error) {
	stay := auth.GetStayWindow(c)
	if query != nil {
		if w := query.Window(); w != nil {
			stay = w
		}
	}

	return h.resolver.Resolve(c.Request.Context(), availability.Query{
		GuestID:   auth.GetGuestID(c),
		ServiceID: serviceID,
		Stay:      stay,
	})
}
