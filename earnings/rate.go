/*
rate.go - Pay-rate rules and rule resolution

PURPOSE:
  Decides which multiplier applies at a given weekday and hour. Two resolvers
  exist: the configurable RateTable (an ordered list of RateRules) and the
  fixed LegacyRates table in legacy.go.

RESOLUTION:
  A rule matches (day, hour) when day is in its day set AND hour falls in any
  of its half-open ranges [Start, End). Rules are tried in list order and the
  first match wins, so users can place a specific rule above a broad one.
  When nothing matches, the table's Fallback applies.

BOUNDARIES:
  A Resolver also reports the hours at which its answer may change. The
  segmenter only splits a shift at those hours, so every resolver MUST list
  every hour at which Resolve can return a different Rate.

EXAMPLE:
  table := NewRateTable([]RateRule{{
      ID:         "night",
      Name:       "Night",
      Multiplier: decimal.NewFromFloat(1.5),
      Days:       []time.Weekday{time.Monday},
      Ranges:     []HourRange{{Start: 0, End: 6}},
  }})
  table.Resolve(time.Monday, 3)  // Night x1.5
  table.Resolve(time.Monday, 9)  // Normal x1.0

SEE ALSO:
  - legacy.go: Fixed five-rate resolver
  - segment.go: Consumer of Resolver
*/
package earnings

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver answers which Rate applies at a weekday and whole hour.
type Resolver interface {
	// Resolve returns the rate for hour in [0, 23] on day.
	Resolve(day time.Weekday, hour int) Rate

	// Boundaries returns every hour in (0, 24) at which Resolve may change
	// its answer, ascending.
	Boundaries() []int
}

// FallbackLabel labels hours no rule covers.
const FallbackLabel = "Normal"

// =============================================================================
// RATE RULE - One configurable rule
// =============================================================================

// HourRange is a half-open range of whole hours [Start, End).
type HourRange struct {
	Start int
	End   int
}

// Contains reports whether hour falls in [Start, End).
func (r HourRange) Contains(hour int) bool { return hour >= r.Start && hour < r.End }

// RateRule applies Multiplier on the listed weekdays during any of Ranges.
type RateRule struct {
	ID          string
	Name        string
	Description string
	Multiplier  decimal.Decimal
	Days        []time.Weekday
	Ranges      []HourRange
	Color       string
}

// Matches reports whether the rule covers (day, hour).
func (r RateRule) Matches(day time.Weekday, hour int) bool {
	if !r.AppliesOn(day) {
		return false
	}
	for _, rg := range r.Ranges {
		if rg.Contains(hour) {
			return true
		}
	}
	return false
}

// AppliesOn reports whether day is in the rule's day set.
func (r RateRule) AppliesOn(day time.Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Rate returns the rule's multiplier labeled with its name.
func (r RateRule) Rate() Rate { return Rate{Multiplier: r.Multiplier, Label: r.Name} }

// Clone returns a deep copy.
func (r RateRule) Clone() RateRule {
	c := r
	c.Days = append([]time.Weekday(nil), r.Days...)
	c.Ranges = append([]HourRange(nil), r.Ranges...)
	return c
}

// =============================================================================
// RATE TABLE - Ordered rules, first match wins
// =============================================================================

// RateTable resolves rates from an ordered rule list.
type RateTable struct {
	Rules    []RateRule
	Fallback Rate
}

// NewRateTable returns a table whose fallback is x1.0 "Normal".
func NewRateTable(rules []RateRule) RateTable {
	return RateTable{Rules: rules, Fallback: Rate{Multiplier: decimal.NewFromInt(1), Label: FallbackLabel}}
}

// Resolve implements Resolver.
func (t RateTable) Resolve(day time.Weekday, hour int) Rate {
	for _, rule := range t.Rules {
		if rule.Matches(day, hour) {
			return rule.Rate()
		}
	}
	return t.Fallback
}

// Boundaries implements Resolver. They are the distinct range endpoints
// strictly inside the day.
func (t RateTable) Boundaries() []int {
	seen := make(map[int]bool)
	var out []int
	add := func(h int) {
		if h > 0 && h < 24 && !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	for _, rule := range t.Rules {
		for _, rg := range rule.Ranges {
			add(rg.Start)
			add(rg.End)
		}
	}
	sort.Ints(out)
	return out
}
