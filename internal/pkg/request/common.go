package request

import "time"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// DateFormat is the wire format for date-only values.
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value into a midnight-UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// TimeFormat is the wire format for wall-clock start times.
const TimeFormat = "15:04"

// ParseClock parses an HH:MM wall-clock value.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}
