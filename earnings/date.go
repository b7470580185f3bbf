package earnings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Local calendar date, no time zone
// =============================================================================

// Date is a civil calendar date. Weekdays follow the proleptic Gregorian
// calendar and never depend on a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// NewDate normalizes its arguments the way time.Date does (Jan 32 is Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ParseError{Field: "date", Value: s, Err: ErrInvalidDate}
	}
	return DateOf(t), nil
}

func (d Date) midnight() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// Weekday returns Sunday=0 through Saturday=6.
func (d Date) Weekday() time.Weekday { return d.midnight().Weekday() }

func (d Date) AddDays(n int) Date { return DateOf(d.midnight().AddDate(0, 0, n)) }
func (d Date) Before(other Date) bool { return d.midnight().Before(other.midnight()) }
func (d Date) After(other Date) bool { return d.midnight().After(other.midnight()) }
func (d Date) IsZero() bool { return d == (Date{}) }
func (d Date) String() string { return d.midnight().Format(dateLayout) }
func (d Date) Format(layout string) string { return d.midnight().Format(layout) }

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK - HH:MM <-> decimal hours
// =============================================================================

var sixty = decimal.NewFromInt(60)

// ParseClock converts "HH:MM" (24-hour) into decimal hours: hours + minutes/60.
func ParseClock(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return decimal.Zero, &ParseError{Field: "time", Value: s, Err: ErrInvalidClock}
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return decimal.Zero, &ParseError{Field: "time", Value: s, Err: ErrInvalidClock}
	}
	return decimal.NewFromInt(int64(h)).Add(decimal.NewFromInt(int64(m)).Div(sixty)), nil
}

// FormatClock renders decimal hours as HH:MM, rounding to the nearest minute.
func FormatClock(hours decimal.Decimal) string {
	total := hours.Mul(sixty).Round(0).IntPart()
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatTimeRange renders "HH:MM - HH:MM".
func FormatTimeRange(start, end decimal.Decimal) string {
	return FormatClock(start) + " - " + FormatClock(end)
}

// ParseWorkInterval builds a WorkInterval from the strings a calendar form
// produces: a YYYY-MM-DD date and two HH:MM times.
func ParseWorkInterval(date, start, end string) (WorkInterval, error) {
	d, err := ParseDate(date)
	if err != nil {
		return WorkInterval{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return WorkInterval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return WorkInterval{}, err
	}
	return WorkInterval{Date: d, Start: s, End: e}, nil
}

// =============================================================================
// MIDNIGHT
// =============================================================================

var hoursPerDay = decimal.NewFromInt(24)

// SplitAtMidnight turns a shift whose end is earlier than its start into two
// intervals: [start, 24) on date and [0, end) on the following day. A shift
// with end >= start is returned unchanged. Ending exactly at midnight yields
// only the first part.
func SplitAtMidnight(date Date, start, end decimal.Decimal) []WorkInterval {
	if !end.LessThan(start) {
		return []WorkInterval{{Date: date, Start: start, End: end}}
	}
	out := []WorkInterval{{Date: date, Start: start, End: hoursPerDay}}
	if end.IsPositive() {
		out = append(out, WorkInterval{Date: date.AddDays(1), Start: decimal.Zero, End: end})
	}
	return out
}
