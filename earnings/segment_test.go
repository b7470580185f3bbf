package earnings_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var (
	basePay  = decimal.NewFromInt(225)
	monday   = earnings.NewDate(2025, time.January, 6)
	saturday = earnings.NewDate(2025, time.January, 11)
	sunday   = earnings.NewDate(2025, time.January, 12)
)

func legacy() earnings.LegacyRates { return payrates.DefaultLegacyRates() }

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func assertDecimal(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]interface{}{"want %v, got %s", want, got.String()}, msgAndArgs...)...)
}

func day(date earnings.Date, start, end float64) earnings.DayBreakdown {
	return earnings.DayEarnings(earnings.NewWorkInterval(date, start, end), basePay, legacy())
}

// =============================================================================
// WORKED SCENARIOS (base pay 225, default legacy multipliers)
// =============================================================================

func TestScenario_WeekdayDayShift(t *testing.T) {
	// GIVEN: Monday 07:00-15:00
	// WHEN: Pricing the shift
	d := day(monday, 7, 15)

	// THEN: One weekday-day segment, 8h x 225
	require.Len(t, d.Segments, 1)
	assert.Equal(t, earnings.LabelWeekdayDay, d.Segments[0].Rate.Label)
	assertDecimal(t, 8, d.TotalHours)
	assertDecimal(t, 1800, d.DailyEarnings)
}

func TestScenario_WeekdayDayAndEvening(t *testing.T) {
	// GIVEN: Monday 07:00-23:00
	d := day(monday, 7, 23)

	// THEN: Split at 15:00, 1800 + 2250
	require.Len(t, d.Segments, 2)
	assertDecimal(t, 15, d.Segments[0].EndHour)
	assertDecimal(t, 1800, d.Segments[0].Earnings)
	assert.Equal(t, earnings.LabelWeekdayEvening, d.Segments[1].Rate.Label)
	assertDecimal(t, 2250, d.Segments[1].Earnings)
	assertDecimal(t, 4050, d.DailyEarnings)
}

func TestScenario_SaturdayDayAndEvening(t *testing.T) {
	// GIVEN: Saturday 07:00-23:00
	d := day(saturday, 7, 23)

	// THEN: 8h x 281.25 + 8h x 315
	require.Len(t, d.Segments, 2)
	assert.Equal(t, earnings.LabelSaturdayDay, d.Segments[0].Rate.Label)
	assertDecimal(t, 2250, d.Segments[0].Earnings)
	assert.Equal(t, earnings.LabelSaturdayEvening, d.Segments[1].Rate.Label)
	assertDecimal(t, 2520, d.Segments[1].Earnings)
	assertDecimal(t, 4770, d.DailyEarnings)
}

func TestScenario_SundayIsOneSegment(t *testing.T) {
	// GIVEN: Sunday 07:00-23:00
	d := day(sunday, 7, 23)

	// THEN: 15:00 is a boundary but nothing changes there, so no split
	require.Len(t, d.Segments, 1)
	assert.Equal(t, earnings.LabelSunday, d.Segments[0].Rate.Label)
	assertDecimal(t, 16, d.Segments[0].Hours)
	assertDecimal(t, 5040, d.DailyEarnings)
}

func TestScenario_EarlyMorningFallback(t *testing.T) {
	// GIVEN: Monday 05:00-07:00, before any rule
	d := day(monday, 5, 7)

	// THEN: Legacy fallback uses the weekday-day multiplier, labeled Normal
	require.Len(t, d.Segments, 1)
	assert.Equal(t, earnings.FallbackLabel, d.Segments[0].Rate.Label)
	assertDecimal(t, 1, d.Segments[0].Rate.Multiplier)
	assertDecimal(t, 450, d.DailyEarnings)
}

func TestScenario_EmptyInterval(t *testing.T) {
	// GIVEN: A shift that starts and ends at 10:00
	d := day(monday, 10, 10)

	// THEN: No segments and zero pay, not an error
	assert.Empty(t, d.Segments)
	assert.NotNil(t, d.Segments)
	assertDecimal(t, 0, d.TotalHours)
	assertDecimal(t, 0, d.DailyEarnings)
}

func TestScenario_EndBeforeStartIsEmpty(t *testing.T) {
	d := day(monday, 15, 7)

	assert.Empty(t, d.Segments)
	assertDecimal(t, 0, d.DailyEarnings)
}

// =============================================================================
// BOUNDARIES - Half-open [start, end)
// =============================================================================

func TestBoundary_SevenBelongsToDay(t *testing.T) {
	// GIVEN: Monday 06:30-07:30
	d := day(monday, 6.5, 7.5)

	// THEN: 06:30-07:00 is fallback, 07:00-07:30 is weekday day
	require.Len(t, d.Segments, 2)
	assert.Equal(t, earnings.FallbackLabel, d.Segments[0].Rate.Label)
	assertDecimal(t, 7, d.Segments[0].EndHour)
	assert.Equal(t, earnings.LabelWeekdayDay, d.Segments[1].Rate.Label)
	assertDecimal(t, 0.5, d.Segments[1].Hours)
}

func TestBoundary_FifteenBelongsToEvening(t *testing.T) {
	d := day(monday, 14.5, 15.5)

	require.Len(t, d.Segments, 2)
	assertDecimal(t, 112.5, d.Segments[0].Earnings)
	assert.Equal(t, earnings.LabelWeekdayEvening, d.Segments[1].Rate.Label)
	assertDecimal(t, 140.625, d.Segments[1].Earnings)
}

func TestBoundary_TwentyThreeFallsBack(t *testing.T) {
	d := day(monday, 22, 24)

	require.Len(t, d.Segments, 2)
	assert.Equal(t, earnings.LabelWeekdayEvening, d.Segments[0].Rate.Label)
	assert.Equal(t, earnings.FallbackLabel, d.Segments[1].Rate.Label)
	assertDecimal(t, 506.25, d.DailyEarnings)
}

func TestBoundary_ResolveAtEdges(t *testing.T) {
	l := legacy()

	assert.Equal(t, earnings.FallbackLabel, l.Resolve(time.Monday, 6).Label)
	assert.Equal(t, earnings.LabelWeekdayDay, l.Resolve(time.Monday, 7).Label)
	assert.Equal(t, earnings.LabelWeekdayDay, l.Resolve(time.Monday, 14).Label)
	assert.Equal(t, earnings.LabelWeekdayEvening, l.Resolve(time.Monday, 15).Label)
	assert.Equal(t, earnings.LabelWeekdayEvening, l.Resolve(time.Friday, 22).Label)
	assert.Equal(t, earnings.FallbackLabel, l.Resolve(time.Friday, 23).Label)
	assert.Equal(t, earnings.FallbackLabel, l.Resolve(time.Saturday, 23).Label)
	assert.Equal(t, earnings.FallbackLabel, l.Resolve(time.Saturday, 3).Label)
	assert.Equal(t, earnings.LabelSunday, l.Resolve(time.Sunday, 3).Label)
}

func TestSunday_FullDayIsOneSegment(t *testing.T) {
	d := day(sunday, 0, 24)

	require.Len(t, d.Segments, 1)
	assertDecimal(t, 7560, d.DailyEarnings)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestSegments_Invariants(t *testing.T) {
	table := payrates.DefaultRules()
	resolvers := map[string]earnings.Resolver{
		"legacy": legacy(),
		"custom": earnings.NewRateTable(table),
	}
	shifts := [][2]float64{
		{0, 24}, {7, 15}, {6.25, 23.75}, {14.5, 15.5}, {22, 24}, {3, 9.5},
		{7.25, 19.75}, {15, 15.01}, {0, 0.5}, {11.2, 11.7},
	}
	dates := []earnings.Date{monday, saturday, sunday}

	for name, r := range resolvers {
		for _, date := range dates {
			for _, s := range shifts {
				iv := earnings.NewWorkInterval(date, s[0], s[1])
				segs := earnings.Segments(iv, date.Weekday(), basePay, r)
				require.NotEmpty(t, segs, "%s %s %v", name, date, s)

				// Hours add up to the interval.
				hours := decimal.Zero
				for _, sg := range segs {
					hours = hours.Add(sg.Hours)
				}
				assert.True(t, hours.Equal(iv.Duration()), "%s %s %v: hours", name, date, s)

				// Contiguous cover from start to end.
				assert.True(t, segs[0].StartHour.Equal(iv.Start))
				assert.True(t, segs[len(segs)-1].EndHour.Equal(iv.End))
				for i := 1; i < len(segs); i++ {
					assert.True(t, segs[i].StartHour.Equal(segs[i-1].EndHour))
					assert.False(t, segs[i].Rate.Equal(segs[i-1].Rate), "adjacent segments share a rate")
				}

				// No segment straddles a rate change.
				for _, sg := range segs {
					first := int(sg.StartHour.Floor().IntPart())
					last := int(sg.EndHour.Ceil().IntPart()) - 1
					for h := first; h <= last; h++ {
						assert.True(t, r.Resolve(date.Weekday(), h).Equal(sg.Rate),
							"%s %s %v: hour %d differs from segment rate", name, date, s, h)
					}
					assert.True(t, sg.Earnings.Equal(sg.Hours.Mul(basePay).Mul(sg.Rate.Multiplier)))
				}
			}
		}
	}
}

func TestSegments_DoesNotMutateResolverBoundaries(t *testing.T) {
	table := earnings.NewRateTable([]earnings.RateRule{
		{ID: "b", Name: "B", Multiplier: dec(2), Days: []time.Weekday{time.Monday}, Ranges: []earnings.HourRange{{Start: 18, End: 20}}},
		{ID: "a", Name: "A", Multiplier: dec(3), Days: []time.Weekday{time.Monday}, Ranges: []earnings.HourRange{{Start: 6, End: 8}}},
	})
	before := table.Boundaries()

	earnings.Segments(earnings.NewWorkInterval(monday, 0, 24), time.Monday, basePay, table)

	assert.Equal(t, before, table.Boundaries())
}
