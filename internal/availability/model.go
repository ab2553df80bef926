package availability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hotelops/guest-services-backend/internal/pkg/apperror"
)

var (
	ErrSourceUnavailable = apperror.New(http.StatusBadGateway, "could not load availability")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "date_from must not be after date_to")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTime       = apperror.New(http.StatusBadRequest, "invalid time, expected HH:MM")
)

// Reason explains why a slot cannot be offered to the guest.
type Reason string

const (
	ReasonAlreadyBooked Reason = "already-booked"
	ReasonNoCapacity    Reason = "no-capacity"
	ReasonPastDate      Reason = "past-date"
)

// Record is one capacity-bounded offering window as reported by the
// availability source. RemainingCapacity is a snapshot taken at query time;
// concurrent bookings by other guests may already have consumed part of it,
// so the backend re-validates capacity at purchase time.
type Record struct {
	Date              time.Time // date-only, midnight UTC
	StartTime         string    // wall-clock "15:04"
	EndTime           string    // empty when FixedDuration
	FixedDuration     bool
	RemainingCapacity int
}

// ContractedService is one of the guest's own existing purchases of the
// service under evaluation. Read-only, used for duplicate detection.
type ContractedService struct {
	ServiceDateTime time.Time
	Quantity        int
}

// JudgedSlot is a Record decorated with a classification outcome.
// AlreadyBooked implies !Available with ReasonAlreadyBooked.
type JudgedSlot struct {
	Record
	Available     bool
	AlreadyBooked bool
	Reason        Reason // empty when Available
}

// DateOnly strips the time-of-day from t, keeping its wall-clock calendar day.
// The result is midnight UTC so date values compare with Equal/Before.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClock parses "15:04" (seconds tolerated and ignored) into wall-clock
// hour and minute.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// minutesOf returns the minute-of-day for a valid clock string, or -1.
func minutesOf(s string) int {
	h, m, ok := parseClock(s)
	if !ok {
		return -1
	}
	return h*60 + m
}
