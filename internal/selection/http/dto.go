package http

import (
	"time"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
)

// QuoteRequest carries the picker state for a cap recomputation: the chosen
// dates and the single start time shared across them.
type QuoteRequest struct {
	Dates []string `json:"dates" binding:"required"`
	Time  string   `json:"time" binding:"required"`
}

// Validate performs custom validation for QuoteRequest.
func (r *QuoteRequest) Validate() error {
	for _, d := range r.Dates {
		if _, err := request.ParseDate(d); err != nil {
			return availability.ErrInvalidDate
		}
	}
	if _, err := request.ParseClock(r.Time); err != nil {
		return availability.ErrInvalidTime
	}
	return nil
}

// ParsedDates returns the chosen dates as date-only values.
func (r *QuoteRequest) ParsedDates() []time.Time {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, d := range r.Dates {
		parsed, err := request.ParseDate(d)
		if err != nil {
			continue
		}
		dates = append(dates, parsed)
	}
	return dates
}

// QuoteResponse echoes the effective selection and the derived quantity cap.
// A cap of 0 means the current selection cannot be purchased.
type QuoteResponse struct {
	Dates       []string `json:"dates"`
	Time        string   `json:"time"`
	QuantityCap int      `json:"quantity_cap"`
}
