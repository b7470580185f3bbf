/*
workspace.go - Host-side state the calculator works on

PURPOSE:
  A Workspace is everything a calculator screen holds: the base hourly pay,
  the rate rules and the selected days with their times. It only lives as
  long as the process; nothing here is meant to survive a restart.

  The engine never reads a Workspace implicitly. Summary() passes base pay
  and resolver explicitly to Aggregate.

RATE MODES:
  ModeLegacy: the five multipliers are read from the rule list by rule ID and
              applied with the fixed legacy policy (default).
  ModeCustom: the rule list itself is the table, first match wins, x1.0
              fallback.

DAY ORDER:
  New days are put first, so Days is most-recently-added first. Aggregation
  preserves that order.
*/
package earnings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateMode selects how a workspace's rules are resolved.
type RateMode string

const (
	ModeLegacy RateMode = "legacy"
	ModeCustom RateMode = "custom"
)

// ParseRateMode validates a mode string. Empty means ModeLegacy.
func ParseRateMode(s string) (RateMode, error) {
	switch RateMode(s) {
	case "", ModeLegacy:
		return ModeLegacy, nil
	case ModeCustom:
		return ModeCustom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Default shift assigned to a newly selected day.
const (
	DefaultShiftStart = 7
	DefaultShiftEnd   = 15
)

// Workspace is the calculator state of one process.
type Workspace struct {
	BasePay decimal.Decimal
	Mode    RateMode
	Rules   []RateRule
	Days    []WorkInterval
}

// Resolver returns the resolver for the workspace's mode.
func (w Workspace) Resolver() Resolver {
	if w.Mode == ModeCustom {
		return NewRateTable(w.Rules)
	}
	return LegacyFromRules(w.Rules)
}

// Summary recomputes earnings for all selected days.
func (w Workspace) Summary() Summary {
	return Aggregate(w.Days, w.BasePay, w.Resolver())
}

// IndexOf returns the position of date in Days, or -1.
func (w Workspace) IndexOf(date Date) int {
	for i, d := range w.Days {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// ToggleDay deselects date if selected, otherwise selects it with the
// default 07:00-15:00 shift at the front of Days. It reports whether the day
// is selected afterwards.
func (w *Workspace) ToggleDay(date Date) bool {
	if i := w.IndexOf(date); i >= 0 {
		w.Days = append(w.Days[:i:i], w.Days[i+1:]...)
		return false
	}
	day := WorkInterval{
		Date:  date,
		Start: decimal.NewFromInt(DefaultShiftStart),
		End:   decimal.NewFromInt(DefaultShiftEnd),
	}
	w.Days = append([]WorkInterval{day}, w.Days...)
	return true
}

// UpdateTimes changes the shift of a selected day.
func (w *Workspace) UpdateTimes(date Date, start, end decimal.Decimal) error {
	i := w.IndexOf(date)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrDayNotSelected, date)
	}
	w.Days[i].Start = start
	w.Days[i].End = end
	return nil
}

// Clear deselects every day. Settings are kept.
func (w *Workspace) Clear() { w.Days = nil }

// Clone returns a deep copy, so stores never share slices with callers.
func (w Workspace) Clone() Workspace {
	c := w
	c.Days = append([]WorkInterval(nil), w.Days...)
	c.Rules = make([]RateRule, len(w.Rules))
	for i, r := range w.Rules {
		c.Rules[i] = r.Clone()
	}
	return c
}
