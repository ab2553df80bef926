package availability

import "time"

// Classify judges every availability record against the guest's contracted
// services and the evaluation instant. The checks run in a fixed order:
//  1. already-booked: a contracted service exists on the same day with the
//     same wall-clock hour and minute as the slot's start time
//  2. no-capacity: the snapshot has no remaining capacity
//  3. past-date: the slot's day is strictly before the evaluation day
//
// Already-booked wins over the other reasons because it is the one the guest
// can actually act on. Classification is a pure map over records: no slot's
// outcome depends on another slot's, and calling it twice with the same
// inputs yields the same result.
func Classify(records []Record, contracted []ContractedService, now time.Time) []JudgedSlot {
	today := DateOnly(now)
	judged := make([]JudgedSlot, 0, len(records))
	for _, rec := range records {
		judged = append(judged, judge(rec, contracted, today))
	}
	return judged
}

func judge(rec Record, contracted []ContractedService, today time.Time) JudgedSlot {
	slot := JudgedSlot{Record: rec}

	hour, minute, ok := parseClock(rec.StartTime)
	if rec.Date.IsZero() || !ok {
		// Malformed rows are read-only display inputs; keep them in the
		// output but never offerable.
		return slot
	}

	if hasContractedAt(contracted, rec.Date, hour, minute) {
		slot.AlreadyBooked = true
		slot.Reason = ReasonAlreadyBooked
		return slot
	}
	if rec.RemainingCapacity <= 0 {
		slot.Reason = ReasonNoCapacity
		return slot
	}
	if rec.Date.Before(today) {
		slot.Reason = ReasonPastDate
		return slot
	}

	slot.Available = true
	return slot
}

// hasContractedAt matches on the calendar day plus wall-clock hour and
// minute. Comparing clock fields rather than instants avoids timezone skew
// between a timestamped contracted record and a date+time-only slot.
func hasContractedAt(contracted []ContractedService, date time.Time, hour, minute int) bool {
	for _, c := range contracted {
		if c.ServiceDateTime.IsZero() {
			continue
		}
		if !DateOnly(c.ServiceDateTime).Equal(date) {
			continue
		}
		if c.ServiceDateTime.Hour() == hour && c.ServiceDateTime.Minute() == minute {
			return true
		}
	}
	return false
}
