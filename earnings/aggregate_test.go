package earnings_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
)

func TestAggregate_SumsDaysInInputOrder(t *testing.T) {
	// GIVEN: Three shifts, not in date order
	intervals := []earnings.WorkInterval{
		earnings.NewWorkInterval(sunday, 7, 23),
		earnings.NewWorkInterval(monday, 7, 23),
		earnings.NewWorkInterval(saturday, 7, 23),
	}

	// WHEN: Aggregating
	s := earnings.Aggregate(intervals, basePay, legacy())

	// THEN: Breakdown keeps input order and totals are exact sums
	require.Len(t, s.Breakdown, 3)
	assert.Equal(t, sunday, s.Breakdown[0].Date)
	assert.Equal(t, time.Sunday, s.Breakdown[0].Weekday)
	assert.Equal(t, monday, s.Breakdown[1].Date)
	assert.Equal(t, saturday, s.Breakdown[2].Date)
	assertDecimal(t, 5040+4050+4770, s.Total)
	assertDecimal(t, 48, s.TotalHours)
	assert.Equal(t, 5, s.SegmentCount())
}

func TestAggregate_TotalEqualsSumOfSegments(t *testing.T) {
	intervals := []earnings.WorkInterval{
		earnings.NewWorkInterval(monday, 6.25, 22.75),
		earnings.NewWorkInterval(saturday, 0.1, 23.9),
		earnings.NewWorkInterval(sunday, 1.3, 2.6),
	}

	s := earnings.Aggregate(intervals, decimal.NewFromFloat(231.37), legacy())

	sum := decimal.Zero
	for _, d := range s.Breakdown {
		daySum := decimal.Zero
		for _, sg := range d.Segments {
			daySum = daySum.Add(sg.Earnings)
		}
		assert.True(t, daySum.Equal(d.DailyEarnings))
		sum = sum.Add(daySum)
	}
	assert.True(t, sum.Equal(s.Total))
}

func TestAggregate_EmptyInput(t *testing.T) {
	s := earnings.Aggregate(nil, basePay, legacy())

	assert.True(t, s.Total.IsZero())
	assert.True(t, s.TotalHours.IsZero())
	assert.NotNil(t, s.Breakdown)
	assert.Empty(t, s.Breakdown)
}

func TestAggregate_Idempotent(t *testing.T) {
	intervals := []earnings.WorkInterval{
		earnings.NewWorkInterval(monday, 7, 23),
		earnings.NewWorkInterval(saturday, 5, 16),
	}

	first := earnings.Aggregate(intervals, basePay, legacy())
	second := earnings.Aggregate(intervals, basePay, legacy())

	assert.Equal(t, first, second)
}

func TestAggregate_BasePayScalesLinearly(t *testing.T) {
	intervals := []earnings.WorkInterval{earnings.NewWorkInterval(saturday, 7, 23)}

	s := earnings.Aggregate(intervals, decimal.NewFromInt(450), legacy())

	assertDecimal(t, 2*4770, s.Total)
}

func TestAggregate_ZeroBasePay(t *testing.T) {
	s := earnings.Aggregate([]earnings.WorkInterval{earnings.NewWorkInterval(monday, 7, 15)}, decimal.Zero, legacy())

	assert.True(t, s.Total.IsZero())
	assertDecimal(t, 8, s.TotalHours)
}
