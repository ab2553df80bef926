package availability

import "time"

// DefaultWindowDays is the length of the rolling query window used when no
// reservation context is known yet.
const DefaultWindowDays = 30

// StayWindow is the guest's reservation bounds as reported by the
// reservation system.
type StayWindow struct {
	Start time.Time
	End   time.Time
}

// Range is an inclusive date-only query window.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the date-only value d falls inside the range.
func (r Range) Contains(d time.Time) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// DeriveRange computes the availability query window. With a stay window the
// bounds are returned date-normalized and otherwise untouched; callers own
// the start <= end guarantee, and an inverted range simply yields no
// availability downstream. Without a stay window the range is
// [today, today+windowDays], both inclusive.
func DeriveRange(stay *StayWindow, now time.Time, windowDays int) Range {
	if stay != nil {
		return Range{From: DateOnly(stay.Start), To: DateOnly(stay.End)}
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	today := DateOnly(now)
	return Range{From: today, To: today.AddDate(0, 0, windowDays)}
}
