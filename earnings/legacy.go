/*
legacy.go - The fixed five-rate pay table

PURPOSE:
  Reproduces the fixed five-rate calculator rules exactly:

    Sunday           all hours          Sunday rate       "Sunday"
    Saturday         07:00-15:00        Saturday day      "Saturday day"
    Saturday         15:00-23:00        Saturday evening  "Saturday evening"
    Monday-Friday    07:00-15:00        Weekday day       "Weekday day"
    Monday-Friday    15:00-23:00        Weekday evening   "Weekday evening"
    anything else                       Weekday day       "Normal"

  The fallback uses the weekday-day multiplier, not 1.0. That differs from
  RateTable, whose fallback is x1.0. Early mornings and late nights on
  Saturday fall through to it as well.

RULE LIST BRIDGE:
  Settings are edited as a RateRule list. LegacyFromRules reads the five
  multipliers back out of that list by rule ID, and Table expresses the
  legacy policy as five RateRules plus the legacy fallback.
*/
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule IDs of the five built-in rules.
const (
	RuleWeekdayDay      = "weekday-day"
	RuleWeekdayEvening  = "weekday-evening"
	RuleSaturdayDay     = "saturday-day"
	RuleSaturdayEvening = "saturday-evening"
	RuleSunday          = "sunday"
)

// Labels produced by LegacyRates.
const (
	LabelSunday          = "Sunday"
	LabelSaturdayDay     = "Saturday day"
	LabelSaturdayEvening = "Saturday evening"
	LabelWeekdayDay      = "Weekday day"
	LabelWeekdayEvening  = "Weekday evening"
)

const (
	dayStart     = 7
	eveningStart = 15
	eveningEnd   = 23
)

var legacyBoundaries = []int{dayStart, eveningStart, eveningEnd}

// LegacyRates holds the five multipliers of the fixed table.
type LegacyRates struct {
	WeekdayDay      decimal.Decimal
	WeekdayEvening  decimal.Decimal
	SaturdayDay     decimal.Decimal
	SaturdayEvening decimal.Decimal
	Sunday          decimal.Decimal
}

// Resolve implements Resolver.
func (l LegacyRates) Resolve(day time.Weekday, hour int) Rate {
	if day == time.Sunday {
		return Rate{Multiplier: l.Sunday, Label: LabelSunday}
	}

	if day == time.Saturday {
		switch {
		case hour >= dayStart && hour < eveningStart:
			return Rate{Multiplier: l.SaturdayDay, Label: LabelSaturdayDay}
		case hour >= eveningStart && hour < eveningEnd:
			return Rate{Multiplier: l.SaturdayEvening, Label: LabelSaturdayEvening}
		}
	}

	if day >= time.Monday && day <= time.Friday {
		switch {
		case hour >= dayStart && hour < eveningStart:
			return Rate{Multiplier: l.WeekdayDay, Label: LabelWeekdayDay}
		case hour >= eveningStart && hour < eveningEnd:
			return Rate{Multiplier: l.WeekdayEvening, Label: LabelWeekdayEvening}
		}
	}

	return l.fallback()
}

// Boundaries implements Resolver.
func (l LegacyRates) Boundaries() []int {
	return append([]int(nil), legacyBoundaries...)
}

func (l LegacyRates) fallback() Rate {
	return Rate{Multiplier: l.WeekdayDay, Label: FallbackLabel}
}

// Table expresses the legacy policy as a RateTable of five rules. It resolves
// identically to l for every weekday and hour.
func (l LegacyRates) Table() RateTable {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	saturday := []time.Weekday{time.Saturday}
	day := []HourRange{{Start: dayStart, End: eveningStart}}
	evening := []HourRange{{Start: eveningStart, End: eveningEnd}}

	return RateTable{
		Rules: []RateRule{
			{ID: RuleSunday, Name: LabelSunday, Multiplier: l.Sunday, Days: []time.Weekday{time.Sunday}, Ranges: []HourRange{{Start: 0, End: 24}}},
			{ID: RuleSaturdayDay, Name: LabelSaturdayDay, Multiplier: l.SaturdayDay, Days: saturday, Ranges: day},
			{ID: RuleSaturdayEvening, Name: LabelSaturdayEvening, Multiplier: l.SaturdayEvening, Days: saturday, Ranges: evening},
			{ID: RuleWeekdayDay, Name: LabelWeekdayDay, Multiplier: l.WeekdayDay, Days: weekdays, Ranges: day},
			{ID: RuleWeekdayEvening, Name: LabelWeekdayEvening, Multiplier: l.WeekdayEvening, Days: weekdays, Ranges: evening},
		},
		Fallback: l.fallback(),
	}
}

// LegacyFromRules picks the five legacy multipliers out of a rule list by ID.
// Missing rules default to 1.0. An explicit 0 is kept as 0, unlike the old
// calculator which read a zero multiplier as 1.0.
func LegacyFromRules(rules []RateRule) LegacyRates {
	find := func(id string) decimal.Decimal {
		for _, r := range rules {
			if r.ID == id {
				return r.Multiplier
			}
		}
		return decimal.NewFromInt(1)
	}
	return LegacyRates{
		WeekdayDay:      find(RuleWeekdayDay),
		WeekdayEvening:  find(RuleWeekdayEvening),
		SaturdayDay:     find(RuleSaturdayDay),
		SaturdayEvening: find(RuleSaturdayEvening),
		Sunday:          find(RuleSunday),
	}
}
