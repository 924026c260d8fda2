package domain

import "time"

// Shift is the work shift an invoice was recorded in.
type Shift string

const (
	Morning Shift = "Morning"
	Evening Shift = "Evening"
)

const (
	morningStartHour = 6
	eveningStartHour = 18
)

// ClassifyShift maps a timestamp to its shift using the hour in t's location.
// Hours 6 through 17 are Morning; everything else is Evening.
func ClassifyShift(t time.Time) Shift {
	h := t.Hour()
	if h >= morningStartHour && h < eveningStartHour {
		return Morning
	}
	return Evening
}
