package earnings

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SEGMENTER - Split one shift where the rate changes
// =============================================================================

// Segments splits iv into maximal runs of a single Rate and prices each one.
//
// Walking from iv.Start, the rate at floor(cursor) is resolved, and the run
// ends at the first resolver boundary b (cursor < b < iv.End) whose rate
// differs, or at iv.End. Adjacent segments therefore never share a rate,
// and a boundary where nothing changes (Sunday at 15:00) does not split.
//
// An empty interval (End <= Start) yields no segments.
func Segments(iv WorkInterval, day time.Weekday, basePay decimal.Decimal, r Resolver) []Segment {
	segments := []Segment{}
	if iv.IsEmpty() {
		return segments
	}

	bounds := append([]int(nil), r.Boundaries()...)
	sort.Ints(bounds)

	cursor := iv.Start
	for cursor.LessThan(iv.End) {
		rate := r.Resolve(day, hourOf(cursor))
		end := nextChange(cursor, iv.End, day, rate, bounds, r)

		hours := end.Sub(cursor)
		segments = append(segments, Segment{
			StartHour: cursor,
			EndHour:   end,
			Hours:     hours,
			Rate:      rate,
			Earnings:  hours.Mul(rate.HourlyPay(basePay)),
		})
		cursor = end
	}
	return segments
}

// nextChange returns the first boundary in (cursor, limit) where the rate
// differs from current, or limit.
func nextChange(cursor, limit decimal.Decimal, day time.Weekday, current Rate, bounds []int, r Resolver) decimal.Decimal {
	for _, b := range bounds {
		at := decimal.NewFromInt(int64(b))
		if !at.GreaterThan(cursor) {
			continue
		}
		if !at.LessThan(limit) {
			break
		}
		if !r.Resolve(day, b).Equal(current) {
			return at
		}
	}
	return limit
}

func hourOf(h decimal.Decimal) int { return int(h.Floor().IntPart()) }
