// Package selection holds the booking picker state: one or more chosen dates
// sharing a single chosen start time. The resolver never stores this state;
// it belongs to the flow that owns the picker and is revalidated against the
// latest availability snapshot at submission time.
package selection

import (
	"sort"
	"time"

	"github.com/hotelops/guest-services-backend/internal/availability"
)

// Selection is the picker state for one booking flow. A chosen date or time
// that disappears from a refreshed snapshot is deliberately NOT auto-cleared
// here; submission-time validation catches it against fresh data.
type Selection struct {
	dates     map[time.Time]struct{}
	startTime string
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{dates: make(map[time.Time]struct{})}
}

// FromRequest builds a selection from wire values, for stateless endpoints
// that receive the picker state with each request.
func FromRequest(dates []time.Time, startTime string) *Selection {
	s := New()
	for _, d := range dates {
		s.dates[availability.DateOnly(d)] = struct{}{}
	}
	s.startTime = startTime
	return s
}

// ToggleDate adds the date to the chosen set, or removes it when already
// chosen. Toggling dates never resets the chosen time: a valid time
// selection must survive date changes.
func (s *Selection) ToggleDate(d time.Time) {
	key := availability.DateOnly(d)
	if _, ok := s.dates[key]; ok {
		delete(s.dates, key)
		return
	}
	s.dates[key] = struct{}{}
}

// SetTime chooses the start time shared by every chosen date.
func (s *Selection) SetTime(startTime string) {
	s.startTime = startTime
}

// Clear resets the selection.
func (s *Selection) Clear() {
	s.dates = make(map[time.Time]struct{})
	s.startTime = ""
}

// Current reports the selection to the consuming booking form. Until both a
// date and a time are chosen it reports ([], ""), meaning "no valid
// selection yet".
func (s *Selection) Current() ([]time.Time, string) {
	if len(s.dates) == 0 || s.startTime == "" {
		return []time.Time{}, ""
	}
	return s.sortedDates(), s.startTime
}

// QuantityCap derives the maximum purchasable quantity for the current
// selection: the minimum, across chosen dates, of the remaining capacity of
// the slot matching the chosen time on that date. A date with no matching
// available slot contributes 0, which blocks submission. The cross-date
// minimum keeps a multi-day purchase within its tightest-constrained day.
func (s *Selection) QuantityCap(days *availability.DaySet) int {
	dates, startTime := s.Current()
	if len(dates) == 0 || days == nil {
		return 0
	}

	minCap := -1
	for _, d := range dates {
		slot := days.SlotAt(d, startTime)
		dayCap := 0
		if slot != nil && slot.Available {
			dayCap = slot.RemainingCapacity
		}
		if minCap < 0 || dayCap < minCap {
			minCap = dayCap
		}
	}
	if minCap < 0 {
		return 0
	}
	return minCap
}

func (s *Selection) sortedDates() []time.Time {
	dates := make([]time.Time, 0, len(s.dates))
	for d := range s.dates {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
