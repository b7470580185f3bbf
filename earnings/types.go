/*
Package earnings provides the pay calculation engine.

PURPOSE:
  Turns worked shifts into pay. A shift is split into segments wherever the
  applicable pay multiplier changes, each segment is priced, and segments are
  summed into a per-day breakdown and a grand total.

KEY CONCEPTS IN THIS FILE (types.go):
  - WorkInterval: One worked shift on a calendar date (decimal hours)
  - Rate: The multiplier and label that apply at a given weekday and hour
  - Segment: A maximal slice of a shift with exactly one Rate
  - DayBreakdown / Summary: Aggregated results

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a function of its inputs. Base pay and the
     rate table are parameters, never package state.
  2. Precision: Hours and money use decimal.Decimal, so the total always
     equals the sum of its segments exactly.
  3. No errors in the core: malformed shifts (end <= start) produce empty
     results instead of failing.

USAGE:
  rates := payrates.DefaultLegacyRates()
  iv, _ := earnings.ParseWorkInterval("2025-01-06", "07:00", "23:00")
  summary := earnings.Aggregate([]earnings.WorkInterval{iv}, decimal.NewFromInt(225), rates)
  // summary.Total == 4050

SEE ALSO:
  - rate.go: Rule tables and the Resolver interface
  - legacy.go: The fixed five-rate table
  - segment.go: Splitting one shift
  - aggregate.go: Summing days
*/
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE - What applies at one (weekday, hour)
// =============================================================================

// Rate is the answer of a Resolver: a multiplier on base pay and a label
// naming the rule it came from.
type Rate struct {
	Multiplier decimal.Decimal
	Label      string
}

// NewRate builds a Rate from a float multiplier.
func NewRate(multiplier float64, label string) Rate {
	return Rate{Multiplier: decimal.NewFromFloat(multiplier), Label: label}
}

// Equal reports whether two rates price and label hours identically.
func (r Rate) Equal(other Rate) bool {
	return r.Multiplier.Equal(other.Multiplier) && r.Label == other.Label
}

// HourlyPay returns the pay for one hour at this rate.
func (r Rate) HourlyPay(basePay decimal.Decimal) decimal.Decimal {
	return basePay.Mul(r.Multiplier)
}

// =============================================================================
// WORK INTERVAL - A shift on one calendar date
// =============================================================================

// WorkInterval is one shift. Start and End are decimal hours since local
// midnight of Date (07:30 is 7.5). A shift with End <= Start is empty.
//
// Shifts crossing midnight must be split by the caller, see SplitAtMidnight.
type WorkInterval struct {
	Date  Date
	Start decimal.Decimal
	End   decimal.Decimal
}

// NewWorkInterval builds an interval from float hours.
func NewWorkInterval(date Date, start, end float64) WorkInterval {
	return WorkInterval{
		Date:  date,
		Start: decimal.NewFromFloat(start),
		End:   decimal.NewFromFloat(end),
	}
}

// IsEmpty reports whether the interval covers no billable time.
func (iv WorkInterval) IsEmpty() bool { return !iv.End.GreaterThan(iv.Start) }

// Duration returns End - Start, or zero for an empty interval.
func (iv WorkInterval) Duration() decimal.Decimal {
	if iv.IsEmpty() {
		return decimal.Zero
	}
	return iv.End.Sub(iv.Start)
}

// =============================================================================
// RESULTS
// =============================================================================

// Segment is a maximal part of a shift during which one Rate applies.
type Segment struct {
	StartHour decimal.Decimal
	EndHour   decimal.Decimal
	Hours     decimal.Decimal
	Rate      Rate
	Earnings  decimal.Decimal
}

// DayBreakdown is the priced decomposition of one WorkInterval.
type DayBreakdown struct {
	Date          Date
	Weekday       time.Weekday
	Start         decimal.Decimal
	End           decimal.Decimal
	Segments      []Segment
	TotalHours    decimal.Decimal
	DailyEarnings decimal.Decimal
}

// Summary is the result of a full recomputation. Breakdown has one entry per
// input interval, in input order.
type Summary struct {
	Total      decimal.Decimal
	TotalHours decimal.Decimal
	Breakdown  []DayBreakdown
}

// SegmentCount returns the number of segments across all days.
func (s Summary) SegmentCount() int {
	n := 0
	for _, d := range s.Breakdown {
		n += len(d.Segments)
	}
	return n
}
