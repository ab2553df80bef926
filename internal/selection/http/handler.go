package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelops/guest-services-backend/internal/auth"
	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
	"github.com/hotelops/guest-services-backend/internal/pkg/response"
	"github.com/hotelops/guest-services-backend/internal/selection"
)

type Handler struct {
	resolver availability.Service
}

func NewHandler(resolver availability.Service) *Handler {
	return &Handler{resolver: resolver}
}

// Quote recomputes the quantity cap for the submitted picker state against a
// fresh availability snapshot. The booking form calls this whenever the
// selection changes and uses the cap to limit its quantity input.
func (h *Handler) Quote(c *gin.Context) {
	serviceID := c.Param("id")
	if _, err := uuid.Parse(serviceID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var body QuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.resolver.Resolve(c.Request.Context(), availability.Query{
		GuestID:   auth.GetGuestID(c),
		ServiceID: serviceID,
		Stay:      auth.GetStayWindow(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	sel := selection.FromRequest(body.ParsedDates(), body.Time)
	dates, startTime := sel.Current()

	resp := QuoteResponse{
		Dates:       make([]string, 0, len(dates)),
		Time:        startTime,
		QuantityCap: sel.QuantityCap(snap.Days),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(request.DateFormat))
	}
	c.JSON(http.StatusOK, resp)
}
