package payrates_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefaultRules_MatchLegacyRates(t *testing.T) {
	// GIVEN: The built-in rules
	rules := payrates.DefaultRules()
	require.Len(t, rules, 5)

	// THEN: Every rule passes validation
	require.NoError(t, payrates.ValidateAll(rules))

	// AND: Their multipliers are the legacy ones
	l := payrates.DefaultLegacyRates()
	assert.True(t, l.WeekdayDay.Equal(decimal.NewFromInt(1)))
	assert.True(t, l.WeekdayEvening.Equal(decimal.NewFromFloat(1.25)))
	assert.True(t, l.SaturdayDay.Equal(decimal.NewFromFloat(1.25)))
	assert.True(t, l.SaturdayEvening.Equal(decimal.NewFromFloat(1.4)))
	assert.True(t, l.Sunday.Equal(decimal.NewFromFloat(1.4)))
}

func TestDefaultRules_LabelsMatchLegacyMode(t *testing.T) {
	// GIVEN: The built-in rules as a custom table and as legacy rates
	custom := earnings.NewRateTable(payrates.DefaultRules())
	legacy := payrates.DefaultLegacyRates()

	// THEN: Hours covered by a rule carry the same label in both modes
	for _, at := range []struct {
		day  time.Weekday
		hour int
	}{
		{time.Monday, 8},
		{time.Friday, 16},
		{time.Saturday, 7},
		{time.Saturday, 22},
		{time.Sunday, 12},
	} {
		assert.Equal(t, legacy.Resolve(at.day, at.hour).Label, custom.Resolve(at.day, at.hour).Label, "%s %02d:00", at.day, at.hour)
	}
}

func TestDefaultRules_FreshCopies(t *testing.T) {
	a := payrates.DefaultRules()
	a[0].Days[0] = time.Sunday

	b := payrates.DefaultRules()
	assert.Equal(t, time.Monday, b[0].Days[0])
	assert.Equal(t, time.Monday, b[1].Days[0])
}

func TestDefaultWorkspace(t *testing.T) {
	ws := payrates.DefaultWorkspace()

	assert.Equal(t, earnings.ModeLegacy, ws.Mode)
	assert.True(t, ws.BasePay.Equal(decimal.NewFromInt(payrates.DefaultBasePay)))
	assert.Empty(t, ws.Days)
}

func TestLegacyRows(t *testing.T) {
	rows := payrates.LegacyRows(payrates.DefaultLegacyRates())

	require.Len(t, rows, 5)
	assert.Equal(t, "Sunday 07-23", rows[4].Period)
	assert.True(t, rows[4].Multiplier.Equal(decimal.NewFromFloat(1.4)))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_ReportsEveryProblem(t *testing.T) {
	rule := earnings.RateRule{
		ID:         "bad",
		Multiplier: decimal.NewFromInt(-1),
		Days:       []time.Weekday{time.Weekday(9)},
		Ranges:     []earnings.HourRange{{Start: 15, End: 7}},
	}

	err := payrates.Validate(rule)

	require.Error(t, err)
	assert.ErrorIs(t, err, payrates.ErrInvalidRule)

	var verr *payrates.RuleValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "bad", verr.RuleID)
	assert.Len(t, verr.Problems, 4)
	assert.Contains(t, err.Error(), "name is required")
}

func TestValidate_EmptyDaysAndRanges(t *testing.T) {
	err := payrates.Validate(earnings.RateRule{Name: "Night"})

	var verr *payrates.RuleValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 2)
}

func TestValidate_ZeroMultiplierAllowed(t *testing.T) {
	rule := payrates.DefaultRules()[0]
	rule.Multiplier = decimal.Zero

	assert.NoError(t, payrates.Validate(rule))
}

func TestValidateAll_DuplicateIDs(t *testing.T) {
	rules := payrates.DefaultRules()
	rules[1].ID = rules[0].ID

	err := payrates.ValidateAll(rules)

	assert.ErrorIs(t, err, payrates.ErrInvalidRule)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNormalize(t *testing.T) {
	rule := payrates.Normalize(earnings.RateRule{Name: "  Night  ", Description: " late "})

	assert.Equal(t, "Night", rule.Name)
	assert.Equal(t, "late", rule.Description)
	assert.True(t, strings.HasPrefix(rule.ID, "custom-"))
	assert.Equal(t, payrates.ColorBlue, rule.Color)

	kept := payrates.Normalize(earnings.RateRule{ID: "night", Name: "Night", Color: payrates.ColorPink})
	assert.Equal(t, "night", kept.ID)
	assert.Equal(t, payrates.ColorPink, kept.Color)
}

func TestNewRuleID_Unique(t *testing.T) {
	assert.NotEqual(t, payrates.NewRuleID(), payrates.NewRuleID())
}

// =============================================================================
// DISPLAY
// =============================================================================

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "Normal", payrates.FormatMultiplier(decimal.NewFromInt(1)))
	assert.Equal(t, "+25%", payrates.FormatMultiplier(decimal.NewFromFloat(1.25)))
	assert.Equal(t, "+40%", payrates.FormatMultiplier(decimal.NewFromFloat(1.4)))
	assert.Equal(t, "-50%", payrates.FormatMultiplier(decimal.NewFromFloat(0.5)))
	assert.Equal(t, "1.25x", payrates.FormatFactor(decimal.NewFromFloat(1.25)))
}

func TestDescribe(t *testing.T) {
	rule := payrates.DefaultRules()[1]

	assert.Equal(t, "Mon, Tue, Wed, Thu, Fri", payrates.DescribeDays(rule.Days))
	assert.Equal(t, "15:00-23:00", payrates.DescribeRanges(rule.Ranges))
}

func TestRGB(t *testing.T) {
	r, g, b := payrates.RGB(payrates.ColorBlue)
	assert.Equal(t, [3]uint8{0x3b, 0x82, 0xf6}, [3]uint8{r, g, b})

	r, g, b = payrates.RGB("#ff0000")
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	// Unknown colors are drawn blue.
	r, g, b = payrates.RGB("chartreuse-ish")
	assert.Equal(t, [3]uint8{0x3b, 0x82, 0xf6}, [3]uint8{r, g, b})
}

func TestTint_IsLighter(t *testing.T) {
	for _, c := range payrates.Colors() {
		r, g, b := payrates.RGB(c)
		tr, tg, tb := payrates.Tint(c)

		assert.GreaterOrEqual(t, int(tr)+int(tg)+int(tb), int(r)+int(g)+int(b), c)
	}
}
