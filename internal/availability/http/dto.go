package http

import (
	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/request"
)

// AvailabilityQuery defines query parameters for the availability endpoint.
// Both bounds or neither must be given; without them the guest's stay window
// from the token applies, falling back to the rolling default range.
type AvailabilityQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

// Validate performs custom validation for AvailabilityQuery.
func (q *AvailabilityQuery) Validate() error {
	if (q.DateFrom == "") != (q.DateTo == "") {
		return availability.ErrInvalidDateRange
	}
	if q.DateFrom != "" && q.DateFrom > q.DateTo {
		return availability.ErrInvalidDateRange
	}
	return nil
}

// Window converts explicit query bounds to a stay window, or nil when absent.
func (q *AvailabilityQuery) Window() *availability.StayWindow {
	if q.DateFrom == "" {
		return nil
	}
	from, err := request.ParseDate(q.DateFrom)
	if err != nil {
		return nil
	}
	to, err := request.ParseDate(q.DateTo)
	if err != nil {
		return nil
	}
	return &availability.StayWindow{Start: from, End: to}
}

type SlotResponse struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time,omitempty"`
	FixedDuration     bool   `json:"is_fixed_duration"`
	RemainingCapacity int    `json:"remaining_capacity"`
	Available         bool   `json:"available"`
	AlreadyBooked     bool   `json:"already_booked"`
	Reason            string `json:"reason,omitempty"`
}

type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// AvailabilityResponse renders the classified snapshot. HasAvailability is
// explicit so an empty result reads as "no availability" rather than an
// ambiguous blank list.
type AvailabilityResponse struct {
	DateFrom        string        `json:"date_from"`
	DateTo          string        `json:"date_to"`
	HasAvailability bool          `json:"has_availability"`
	AvailableDates  []string      `json:"available_dates"`
	Days            []DayResponse `json:"days"`
}

func NewSlotResponse(s availability.JudgedSlot) SlotResponse {
	endTime := s.EndTime
	if s.FixedDuration {
		// End times carry no meaning for fixed-duration slots.
		endTime = ""
	}
	return SlotResponse{
		StartTime:         s.StartTime,
		EndTime:           endTime,
		FixedDuration:     s.FixedDuration,
		RemainingCapacity: s.RemainingCapacity,
		Available:         s.Available,
		AlreadyBooked:     s.AlreadyBooked,
		Reason:            string(s.Reason),
	}
}

func NewAvailabilityResponse(snap *availability.Snapshot) AvailabilityResponse {
	availableDates := make([]string, 0)
	for _, d := range snap.Days.AvailableDates() {
		availableDates = append(availableDates, d.Format(request.DateFormat))
	}

	days := make([]DayResponse, 0)
	for _, d := range snap.Days.Dates() {
		slots := snap.Days.SlotsFor(d)
		day := DayResponse{Date: d.Format(request.DateFormat), Slots: make([]SlotResponse, 0, len(slots))}
		for _, s := range slots {
			day.Slots = append(day.Slots, NewSlotResponse(s))
		}
		days = append(days, day)
	}

	return AvailabilityResponse{
		DateFrom:        snap.Range.From.Format(request.DateFormat),
		DateTo:          snap.Range.To.Format(request.DateFormat),
		HasAvailability: len(availableDates) > 0,
		AvailableDates:  availableDates,
		Days:            days,
	}
}

// BestSlotQuery defines query parameters for the best-slot endpoint.
type BestSlotQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type BestSlotResponse struct {
	Date string        `json:"date"`
	Slot *SlotResponse `json:"slot"` // null when the date has no available slot
}
