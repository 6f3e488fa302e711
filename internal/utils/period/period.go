// Package period holds calendar helpers for months, inclusive date ranges and series buckets.
// Calendar dates are represented as midnight UTC.
package period

import (
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = time.DateOnly
)

// Date truncates t to its calendar date as observed in loc.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return d, nil
}

// ParseMonth parses YYYY-MM and returns the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	m, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid month %q, expected YYYY-MM", apperrors.ErrValidation, s)
	}
	return m, nil
}

// MonthOf formats the month containing t in loc.
func MonthOf(t time.Time, loc *time.Location) string {
	return Date(t, loc).Format(MonthLayout)
}

// Range is a half-open timestamp interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// startOfDay returns local midnight of the calendar date d in loc.
func startOfDay(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// MonthRange returns [first of month, first of next month) in loc.
func MonthRange(month string, loc *time.Location) (Range, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return Range{}, err
	}
	start := startOfDay(first, loc)
	return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// DayRange converts the inclusive calendar range [from, to] into [from 00:00, to+1 00:00) in loc.
func DayRange(from, to time.Time, loc *time.Location) (Range, error) {
	if to.Before(from) {
		return Range{}, fmt.Errorf("%w: 'to' (%s) must not be before 'from' (%s)",
			apperrors.ErrValidation, to.Format(DateLayout), from.Format(DateLayout))
	}
	return Range{
		Start: startOfDay(from, loc),
		End:   startOfDay(to, loc).AddDate(0, 0, 1),
	}, nil
}

// BucketStart returns the calendar date that opens the bucket containing date d.
// Weeks start on Monday.
func BucketStart(d time.Time, g domain.Granularity) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case domain.GranularityWeek:
		offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
		return d.AddDate(0, 0, -offset)
	case domain.GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// NextBucket returns the start of the bucket that follows start.
func NextBucket(start time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityWeek:
		return start.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Buckets lists every bucket start touching the inclusive calendar range [from, to].
func Buckets(from, to time.Time, g domain.Granularity) []time.Time {
	var out []time.Time
	end := BucketStart(to, g)
	for b := BucketStart(from, g); !b.After(end); b = NextBucket(b, g) {
		out = append(out, b)
	}
	return out
}
