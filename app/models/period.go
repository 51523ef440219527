package models

import "time"

// DateRange is an inclusive calendar-date range. A nil bound is unbounded
// on that side; the zero value means "all time".
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsBounded reports whether both ends of the range are set.
func (r DateRange) IsBounded() bool {
	return r.Start != nil && r.End != nil
}

// SingleDay builds the [day, day] range.
func SingleDay(day time.Time) DateRange {
	d := day
	return DateRange{Start: &d, End: &d}
}
