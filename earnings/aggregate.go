package earnings

import "github.com/shopspring/decimal"

// =============================================================================
// AGGREGATOR - Days and totals
// =============================================================================

// DayEarnings prices one shift. The weekday comes from the interval's
// calendar date.
func DayEarnings(iv WorkInterval, basePay decimal.Decimal, r Resolver) DayBreakdown {
	day := iv.Date.Weekday()
	segments := Segments(iv, day, basePay, r)

	hours, pay := decimal.Zero, decimal.Zero
	for _, s := range segments {
		hours = hours.Add(s.Hours)
		pay = pay.Add(s.Earnings)
	}

	return DayBreakdown{
		Date:          iv.Date,
		Weekday:       day,
		Start:         iv.Start,
		End:           iv.End,
		Segments:      segments,
		TotalHours:    hours,
		DailyEarnings: pay,
	}
}

// Aggregate recomputes every shift from scratch. It is the single entry point
// hosts call whenever any input changes: it has no state, so calling it twice
// with the same arguments gives identical results.
//
// Breakdown keeps the order of intervals; callers decide presentation order.
func Aggregate(intervals []WorkInterval, basePay decimal.Decimal, r Resolver) Summary {
	summary := Summary{
		Total:      decimal.Zero,
		TotalHours: decimal.Zero,
		Breakdown:  make([]DayBreakdown, 0, len(intervals)),
	}
	for _, iv := range intervals {
		day := DayEarnings(iv, basePay, r)
		summary.Breakdown = append(summary.Breakdown, day)
		summary.Total = summary.Total.Add(day.DailyEarnings)
		summary.TotalHours = summary.TotalHours.Add(day.TotalHours)
	}
	return summary
}
