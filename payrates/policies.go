/*
policies.go - Pre-built pay-rate configurations

PURPOSE:
  Provides the rate rules a fresh calculator starts with, and the matching
  legacy multipliers. These are the numbers the calculator shipped with:

    Weekday day        Mon-Fri 07:00-15:00   x1.00
    Weekday evening    Mon-Fri 15:00-23:00   x1.25
    Saturday day       Sat     07:00-15:00   x1.25
    Saturday evening   Sat     15:00-23:00   x1.40
    Sunday             Sun     07:00-23:00   x1.40

  Base pay defaults to 225 per hour.

RULE IDS:
  The five rules carry the IDs earnings.LegacyFromRules looks up, so editing
  their multipliers in settings changes the legacy calculation too.

SEE ALSO:
  - earnings/legacy.go: The legacy resolver
  - validate.go: Checks applied to user-edited rules
  - factory/rules.go: JSON/YAML rule documents
*/
package payrates

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
)

// DefaultBasePay is the hourly base pay of a fresh workspace.
const DefaultBasePay = 225

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// =============================================================================
// DEFAULT TABLES
// =============================================================================

// DefaultRules returns the five built-in rules in their display order.
func DefaultRules() []earnings.RateRule {
	return []earnings.RateRule{
		{
			ID:          earnings.RuleWeekdayDay,
			Name:        earnings.LabelWeekdayDay,
			Description: "Monday-Friday 07:00-15:00",
			Multiplier:  decimal.NewFromFloat(1.0),
			Days:        append([]time.Weekday(nil), weekdays...),
			Ranges:      []earnings.HourRange{{Start: 7, End: 15}},
			Color:       ColorBlue,
		},
		{
			ID:          earnings.RuleWeekdayEvening,
			Name:        earnings.LabelWeekdayEvening,
			Description: "Monday-Friday 15:00-23:00",
			Multiplier:  decimal.NewFromFloat(1.25),
			Days:        append([]time.Weekday(nil), weekdays...),
			Ranges:      []earnings.HourRange{{Start: 15, End: 23}},
			Color:       ColorGreen,
		},
		{
			ID:          earnings.RuleSaturdayDay,
			Name:        earnings.LabelSaturdayDay,
			Description: "Saturday 07:00-15:00",
			Multiplier:  decimal.NewFromFloat(1.25),
			Days:        []time.Weekday{time.Saturday},
			Ranges:      []earnings.HourRange{{Start: 7, End: 15}},
			Color:       ColorGreen,
		},
		{
			ID:          earnings.RuleSaturdayEvening,
			Name:        earnings.LabelSaturdayEvening,
			Description: "Saturday 15:00-23:00",
			Multiplier:  decimal.NewFromFloat(1.4),
			Days:        []time.Weekday{time.Saturday},
			Ranges:      []earnings.HourRange{{Start: 15, End: 23}},
			Color:       ColorOrange,
		},
		{
			ID:          earnings.RuleSunday,
			Name:        earnings.LabelSunday,
			Description: "Sunday 07:00-23:00",
			Multiplier:  decimal.NewFromFloat(1.4),
			Days:        []time.Weekday{time.Sunday},
			Ranges:      []earnings.HourRange{{Start: 7, End: 23}},
			Color:       ColorOrange,
		},
	}
}

// DefaultLegacyRates returns the legacy multipliers of DefaultRules.
func DefaultLegacyRates() earnings.LegacyRates {
	return earnings.LegacyFromRules(DefaultRules())
}

// DefaultWorkspace returns the state of a freshly opened calculator.
func DefaultWorkspace() earnings.Workspace {
	return earnings.Workspace{
		BasePay: decimal.NewFromInt(DefaultBasePay),
		Mode:    earnings.ModeLegacy,
		Rules:   DefaultRules(),
	}
}

// =============================================================================
// LEGACY TABLE ROWS - For rate overviews and exports
// =============================================================================

// LegacyRow is one line of the legacy rate overview.
type LegacyRow struct {
	Period     string
	Multiplier decimal.Decimal
}

// LegacyRows lists the legacy rates in overview order.
func LegacyRows(l earnings.LegacyRates) []LegacyRow {
	return []LegacyRow{
		{Period: "Weekday 07-15", Multiplier: l.WeekdayDay},
		{Period: "Weekday 15-23", Multiplier: l.WeekdayEvening},
		{Period: "Saturday 07-15", Multiplier: l.SaturdayDay},
		{Period: "Saturday 15-23", Multiplier: l.SaturdayEvening},
		{Period: "Sunday 07-23", Multiplier: l.Sunday},
	}
}
