package services

import (
	"errors"
	"time"

	"eduface/app/models"
)

var (
	// ErrInvalidPeriod means the named period is not day, week or month.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidDate means a date parameter is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
	// ErrInvalidRange means the range end precedes its start.
	ErrInvalidRange = errors.New("range end before start")
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD parameter.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ResolvePeriod translates a named period into the concrete inclusive date
// range containing today. Weeks start on Monday; months follow calendar
// boundaries, including the December rollover.
func ResolvePeriod(period string, today time.Time) (models.DateRange, error) {
	today = DateOf(today)
	switch period {
	case "day":
		return models.SingleDay(today), nil
	case "week":
		// time.Weekday counts Sunday as 0
		daysSinceMonday := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -daysSinceMonday)
		end := start.AddDate(0, 0, 6)
		return models.DateRange{Start: &start, End: &end}, nil
	case "month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return models.DateRange{Start: &start, End: &end}, nil
	default:
		return models.DateRange{}, ErrInvalidPeriod
	}
}

// ResolveRange builds the effective range from explicit bounds and a named
// period. Explicit bounds always win; the named period only applies when
// neither bound is supplied. With nothing supplied the range is "all time".
func ResolveRange(startStr, endStr, period string, today time.Time) (models.DateRange, error) {
	if startStr == "" && endStr == "" {
		if period == "" {
			return models.DateRange{}, nil
		}
		return ResolvePeriod(period, today)
	}

	var r models.DateRange
	if startStr != "" {
		start, err := ParseDate(startStr)
		if err != nil {
			return models.DateRange{}, err
		}
		r.Start = &start
	}
	if endStr != "" {
		end, err := ParseDate(endStr)
		if err != nil {
			return models.DateRange{}, err
		}
		r.End = &end
	}
	if r.IsBounded() && r.End.Before(*r.Start) {
		return models.DateRange{}, ErrInvalidRange
	}
	return r, nil
}
