package purchase

import (
	"net/http"
	"time"

	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/pkg/apperror"
)

var (
	ErrNoSelection     = apperror.New(http.StatusBadRequest, "select at least one date and a time")
	ErrInvalidQuantity = apperror.New(http.StatusBadRequest, "quantity must be at least 1")
	ErrQuantityOverCap = apperror.New(http.StatusBadRequest, "requested quantity exceeds remaining capacity")
	ErrOutsideStay     = apperror.New(http.StatusBadRequest, "selected date falls outside the reservation stay")
	// ErrQuotaExceeded is the backend's authoritative over-quota rejection.
	// The advisory client-side cap passed but capacity ran out before the
	// purchase landed; the guest should re-select, so this stays distinct
	// from a generic failure.
	ErrQuotaExceeded = apperror.New(http.StatusConflict, "slot capacity was exhausted, please choose another slot")
)

// Request is one booking-flow submission: the same service, start time and
// quantity applied to every selected date.
type Request struct {
	GuestID       string
	ServiceID     string
	ReservationID string
	Stay          *availability.StayWindow
	Dates         []time.Time
	StartTime     string
	Quantity      int
}

// Order is the payload handed to the contracting collaborator for a single
// date.
type Order struct {
	GuestID         string
	ServiceID       string
	ReservationID   string
	ServiceDateTime time.Time
	Quantity        int
	UnitPrice       int64
}

// DateResult is the outcome of one per-date purchase request.
type DateResult struct {
	Date time.Time
	Err  error // nil on success
}

// Result reports per-date outcomes. The submission issues one request per
// selected date, so partial failure is a normal state, never collapsed into
// a single all-or-nothing answer.
type Result struct {
	Results []DateResult
}

// AllSucceeded reports whether every per-date request landed.
func (r *Result) AllSucceeded() bool {
	for _, dr := range r.Results {
		if dr.Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the subset of dates whose purchase did not land.
func (r *Result) Failed() []DateResult {
	var failed []DateResult
	for _, dr := range r.Results {
		if dr.Err != nil {
			failed = append(failed, dr)
		}
	}
	return failed
}
