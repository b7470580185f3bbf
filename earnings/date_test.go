package earnings_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/earnings"
)

// =============================================================================
// DATES
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := earnings.ParseDate("2025-01-12")

	require.NoError(t, err)
	assert.Equal(t, sunday, d)
	assert.Equal(t, time.Sunday, d.Weekday())
	assert.Equal(t, "2025-01-12", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-13-01", "12.01.2025", "2025-02-30"} {
		_, err := earnings.ParseDate(s)

		assert.ErrorIs(t, err, earnings.ErrInvalidDate, s)
		assert.True(t, earnings.IsClientError(err), s)

		var pe *earnings.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "date", pe.Field)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	assert.Equal(t, earnings.NewDate(2025, time.February, 1), earnings.NewDate(2025, time.January, 31).AddDays(1))
	assert.Equal(t, earnings.NewDate(2024, time.February, 29), earnings.NewDate(2024, time.March, 1).AddDays(-1))
	assert.True(t, monday.Before(sunday))
	assert.True(t, sunday.After(saturday))
	assert.True(t, earnings.Date{}.IsZero())
	assert.False(t, monday.IsZero())
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]earnings.Date{"date": monday})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-01-06"}`, string(b))

	var out map[string]earnings.Date
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, monday, out["date"])
}

// =============================================================================
// CLOCK
// =============================================================================

func TestParseClock(t *testing.T) {
	h, err := earnings.ParseClock("07:30")
	require.NoError(t, err)
	assertDecimal(t, 7.5, h)

	h, err = earnings.ParseClock("23:45")
	require.NoError(t, err)
	assertDecimal(t, 23.75, h)

	h, err = earnings.ParseClock("00:00")
	require.NoError(t, err)
	assertDecimal(t, 0, h)
}

func TestParseClock_Invalid(t *testing.T) {
	for _, s := range []string{"", "7", "24:00", "12:60", "ab:cd", "-1:00"} {
		_, err := earnings.ParseClock(s)

		assert.ErrorIs(t, err, earnings.ErrInvalidClock, s)
	}
}

func TestFormatClock_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "07:05", "14:59", "23:59"} {
		h, err := earnings.ParseClock(s)
		require.NoError(t, err)

		assert.Equal(t, s, earnings.FormatClock(h))
	}
	assert.Equal(t, "07:00 - 15:00", earnings.FormatTimeRange(dec(7), dec(15)))
}

func TestParseWorkInterval(t *testing.T) {
	iv, err := earnings.ParseWorkInterval("2025-01-06", "07:00", "15:30")

	require.NoError(t, err)
	assert.Equal(t, monday, iv.Date)
	assertDecimal(t, 8.5, iv.Duration())

	_, err = earnings.ParseWorkInterval("2025-01-06", "07:00", "25:00")
	assert.ErrorIs(t, err, earnings.ErrInvalidClock)
}

// =============================================================================
// MIDNIGHT
// =============================================================================

func TestSplitAtMidnight(t *testing.T) {
	// GIVEN: Saturday 22:00 until Sunday 02:00
	parts := earnings.SplitAtMidnight(saturday, dec(22), dec(2))

	// THEN: Two intervals on consecutive dates
	require.Len(t, parts, 2)
	assert.Equal(t, saturday, parts[0].Date)
	assertDecimal(t, 24, parts[0].End)
	assert.Equal(t, sunday, parts[1].Date)
	assertDecimal(t, 0, parts[1].Start)
	assertDecimal(t, 2, parts[1].End)

	// AND: Each part is priced by its own weekday
	s := earnings.Aggregate(parts, basePay, legacy())
	assertDecimal(t, 315+225+630, s.Total)
}

func TestSplitAtMidnight_NoCrossing(t *testing.T) {
	parts := earnings.SplitAtMidnight(monday, dec(7), dec(15))
	require.Len(t, parts, 1)
	assertDecimal(t, 15, parts[0].End)

	parts = earnings.SplitAtMidnight(monday, dec(18), dec(0))
	require.Len(t, parts, 1)
	assertDecimal(t, 24, parts[0].End)

	// end == start stays one empty shift on the same day
	parts = earnings.SplitAtMidnight(monday, dec(9), dec(9))
	require.Len(t, parts, 1)
	assert.Equal(t, monday, parts[0].Date)
	assert.True(t, parts[0].IsEmpty())
}
