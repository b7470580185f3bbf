package payrates

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
)

// Rule colors offered by the settings form.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorOrange = "orange"
	ColorPurple = "purple"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorIndigo = "indigo"
	ColorPink   = "pink"
)

var palette = map[string]string{
	ColorBlue:   "#3b82f6",
	ColorGreen:  "#22c55e",
	ColorOrange: "#f97316",
	ColorPurple: "#a855f7",
	ColorRed:    "#ef4444",
	ColorYellow: "#eab308",
	ColorIndigo: "#6366f1",
	ColorPink:   "#ec4899",
}

// Colors returns the palette names in form order.
func Colors() []string {
	return []string{ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorRed, ColorYellow, ColorIndigo, ColorPink}
}

// RGB returns the 8-bit RGB of a palette name or a "#rrggbb" hex string.
// Anything unrecognized is drawn blue.
func RGB(color string) (r, g, b uint8) {
	hex, ok := palette[color]
	if !ok {
		hex = color
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(palette[ColorBlue])
	}
	return c.RGB255()
}

// Tint returns a light version of a rule color for table backgrounds.
func Tint(color string) (r, g, b uint8) {
	cr, cg, cb := RGB(color)
	base := colorful.Color{R: float64(cr) / 255, G: float64(cg) / 255, B: float64(cb) / 255}
	return base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.85).Clamped().RGB255()
}

// =============================================================================
// TEXT
// =============================================================================

var one = decimal.NewFromInt(1)

// FormatMultiplier renders 1.0 as "Normal" and anything else as a
// percentage supplement, e.g. 1.25 -> "+25%".
func FormatMultiplier(m decimal.Decimal) string {
	if m.Equal(one) {
		return earnings.FallbackLabel
	}
	pct := m.Sub(one).Mul(decimal.NewFromInt(100)).Round(0)
	if pct.IsNegative() {
		return pct.String() + "%"
	}
	return "+" + pct.String() + "%"
}

// FormatFactor renders a multiplier as "1.25x".
func FormatFactor(m decimal.Decimal) string { return m.StringFixed(2) + "x" }

// DescribeDays renders weekdays as "Mon, Tue".
func DescribeDays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ", ")
}

// DescribeRanges renders hour ranges as "07:00-15:00, 18:00-22:00".
func DescribeRanges(ranges []earnings.HourRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = fmt.Sprintf("%02d:00-%02d:00", r.Start, r.End)
	}
	return strings.Join(parts, ", ")
}
