package availability

import (
	"sort"
	"time"
)

// DaySet is a read-only view over a classified slot list, grouped by
// calendar day. It is rebuilt from scratch whenever the backing slots are
// re-fetched; there is no caching beyond the grouping itself.
type DaySet struct {
	byDate map[time.Time][]JudgedSlot
	order  []time.Time // first-seen date order from the source list
}

// NewDaySet groups slots by date. Insertion order within a date is preserved
// from the source list.
func NewDaySet(slots []JudgedSlot) *DaySet {
	d := &DaySet{byDate: make(map[time.Time][]JudgedSlot, len(slots))}
	for _, s := range slots {
		key := DateOnly(s.Date)
		if _, seen := d.byDate[key]; !seen {
			d.order = append(d.order, key)
		}
		d.byDate[key] = append(d.byDate[key], s)
	}
	return d
}

// AvailableDates returns every date with at least one available slot,
// ascending and deduplicated.
func (d *DaySet) AvailableDates() []time.Time {
	dates := make([]time.Time, 0, len(d.order))
	for _, day := range d.order {
		for _, s := range d.byDate[day] {
			if s.Available {
				dates = append(dates, day)
				break
			}
		}
	}
	sortDates(dates)
	return dates
}

// SlotsFor returns the slots recorded for a date, in source order. A date
// with no records yields an empty slice, not an error.
func (d *DaySet) SlotsFor(date time.Time) []JudgedSlot {
	return d.byDate[DateOnly(date)]
}

// SlotAt returns the slot on the given date starting at the given wall-clock
// time, or nil when no such slot exists.
func (d *DaySet) SlotAt(date time.Time, startTime string) *JudgedSlot {
	want := minutesOf(startTime)
	if want < 0 {
		return nil
	}
	for i, s := range d.byDate[DateOnly(date)] {
		if minutesOf(s.StartTime) == want {
			return &d.byDate[DateOnly(date)][i]
		}
	}
	return nil
}

// BestSlotFor returns the available slot with the highest remaining capacity
// for a date, ties broken by earliest start time. Nil when the date has no
// available slot.
func (d *DaySet) BestSlotFor(date time.Time) *JudgedSlot {
	slots := d.byDate[DateOnly(date)]
	var best *JudgedSlot
	for i := range slots {
		s := &slots[i]
		if !s.Available {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		if s.RemainingCapacity > best.RemainingCapacity {
			best = s
			continue
		}
		if s.RemainingCapacity == best.RemainingCapacity &&
			minutesOf(s.StartTime) < minutesOf(best.StartTime) {
			best = s
		}
	}
	return best
}

// Dates returns every recorded date in first-seen order.
func (d *DaySet) Dates() []time.Time {
	return d.order
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
