package export

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
)

// FormatCurrency renders an amount as "NOK 1 234,50". A plain space is used
// as thousands separator so the PDF core fonts can draw it.
func FormatCurrency(d decimal.Decimal) string {
	return "NOK " + humanize.FormatFloat("# ###,##", d.Round(2).InexactFloat64())
}

// FormatHours renders hours with one decimal.
func FormatHours(d decimal.Decimal) string { return d.StringFixed(1) }

// FormatDate renders dd.mm.yyyy.
func FormatDate(d earnings.Date) string { return d.Format("02.01.2006") }

// FormatDay renders "Monday, 06.01.2025".
func FormatDay(d earnings.Date) string { return d.Weekday().String() + ", " + FormatDate(d) }
