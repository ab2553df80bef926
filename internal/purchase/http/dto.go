package http

import (
	"time"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
	"github.com/hotelops/guest-services-backend/internal/purchase"
)

// CreatePurchaseRequest is the self-service booking submission. Guest
// identity and stay bounds come from the token, never from the body.
type CreatePurchaseRequest struct {
	Dates    []string `json:"dates" binding:"required"`
	Time     string   `json:"time" binding:"required"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
}

// Validate performs custom validation for CreatePurchaseRequest.
func (r *CreatePurchaseRequest) Validate() error {
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

// ParsedDates returns the selected dates as date-only values.
func (r *CreatePurchaseRequest) ParsedDates() []time.Time {
	return parseDates(r.Dates)
}

// StaffPurchaseRequest is the staff-assisted booking submission. The
// operator supplies the guest, the reservation, and its authoritative stay
// bounds alongside the selection.
type StaffPurchaseRequest struct {
	GuestID       string   `json:"guest_id" binding:"required,uuid"`
	ReservationID string   `json:"reservation_id" binding:"omitempty,uuid"`
	StayStart     string   `json:"stay_start" binding:"omitempty,datetime=2006-01-02"`
	StayEnd       string   `json:"stay_end" binding:"omitempty,datetime=2006-01-02"`
	Dates         []string `json:"dates" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	Quantity      int      `json:"quantity" binding:"required,min=1"`
}

// Validate performs custom validation for StaffPurchaseRequest.
func (r *StaffPurchaseRequest) Validate() error {
	if (r.StayStart == "") != (r.StayEnd == "") {
		return availability.ErrInvalidDateRange
	}
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

// ParsedDates returns the selected dates as date-only values.
func (r *StaffPurchaseRequest) ParsedDates() []time.Time {
	return parseDates(r.Dates)
}

// Stay returns the supplied stay bounds, or nil when absent.
func (r *StaffPurchaseRequest) Stay() *availability.StayWindow {
	if r.StayStart == "" {
		return nil
	}
	start, err := request.ParseDate(r.StayStart)
	if err != nil {
		return nil
	}
	end, err := request.ParseDate(r.StayEnd)
	if err != nil {
		return nil
	}
	return &availability.StayWindow{Start: start, End: end}
}

// DateResultResponse is the outcome of one per-date purchase request.
type DateResultResponse struct {
	Date  string `json:"date"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PurchaseResponse reports per-date outcomes. Partial failure is a normal
// state of a multi-date submission: succeeded purchases stand and the failed
// subset can be retried.
type PurchaseResponse struct {
	AllSucceeded bool                 `json:"all_succeeded"`
	Results      []DateResultResponse `json:"results"`
}

func NewPurchaseResponse(result *purchase.Result) PurchaseResponse {
	resp := PurchaseResponse{
		AllSucceeded: result.AllSucceeded(),
		Results:      make([]DateResultResponse, 0, len(result.Results)),
	}
	for _, dr := range result.Results {
		out := DateResultResponse{Date: dr.Date.Format(request.DateFormat), OK: dr.Err == nil}
		if dr.Err != nil {
			out.Error = dr.Err.Error()
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}

func parseDates(raw []string) []time.Time {
	dates := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		parsed, err := request.ParseDate(d)
		if err != nil {
			continue
		}
		dates = append(dates, parsed)
	}
	return dates
}
