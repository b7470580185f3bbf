/*
dto.go - Data Transfer Objects for the HTTP API

PURPOSE:
  Defines the JSON request/response structures exchanged with the calculator
  frontend. Domain types (earnings.*) keep decimals; DTOs carry floats for
  amounts and "HH:MM" strings for times.

NAMING CONVENTION:
  - *Request: Incoming request bodies
  - *DTO: Outgoing response objects
  - *Response: Composite response wrappers

JSON CONVENTIONS:
  - snake_case field names
  - Dates as YYYY-MM-DD
  - Times of day as HH:MM
  - Money as numbers, plus a preformatted "NOK 1 234,50" string

SEE ALSO:
  - handlers.go: Uses these DTOs
  - factory/rules.go: Rule document types reused as rule DTOs
*/
package api

import (
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/export"
	"github.com/warp/wage-engine/factory"
	"github.com/warp/wage-engine/payrates"
)

// =============================================================================
// SHIFTS AND RESULTS
// =============================================================================

// ShiftDTO is one worked day as the calendar form edits it.
type ShiftDTO struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SegmentDTO is one priced segment.
type SegmentDTO struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Hours      float64 `json:"hours"`
	Multiplier float64 `json:"multiplier"`
	Label      string  `json:"label"`
	Supplement string  `json:"supplement"`
	Earnings   float64 `json:"earnings"`
}

// DayDTO is the breakdown of one day.
type DayDTO struct {
	Date          string       `json:"date"`
	Weekday       string       `json:"weekday"`
	Start         string       `json:"start"`
	End           string       `json:"end"`
	TotalHours    float64      `json:"total_hours"`
	DailyEarnings float64      `json:"daily_earnings"`
	Segments      []SegmentDTO `json:"segments"`
}

// SummaryDTO is a full recomputation.
type SummaryDTO struct {
	Total          float64  `json:"total"`
	TotalFormatted string   `json:"total_formatted"`
	TotalHours     float64  `json:"total_hours"`
	Days           []DayDTO `json:"days"`
}

// =============================================================================
// REQUESTS
// =============================================================================

// CalculateRequest prices shifts without touching the workspace. With no
// rules the built-in defaults are used.
type CalculateRequest struct {
	BasePay       *float64           `json:"base_pay,omitempty"`
	Mode          string             `json:"mode,omitempty"`
	Rules         []factory.RuleJSON `json:"rules,omitempty"`
	Fallback      *factory.RateJSON  `json:"fallback,omitempty"`
	Shifts        []ShiftDTO         `json:"shifts"`
	SplitMidnight bool               `json:"split_midnight,omitempty"`
}

// SettingsRequest updates workspace settings. Omitted fields are kept.
type SettingsRequest struct {
	BasePay *float64           `json:"base_pay,omitempty"`
	Mode    *string            `json:"mode,omitempty"`
	Rules   []factory.RuleJSON `json:"rules,omitempty"`
}

// UpdateDayRequest changes the times of a selected day.
type UpdateDayRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ExportRequest asks for a timesheet document.
type ExportRequest struct {
	Format     string          `json:"format"`
	Employee   export.Employee `json:"employee"`
	IncludePay bool            `json:"include_pay"`
}

// LoadScenarioRequest selects a sample scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// WorkspaceDTO is the whole calculator state plus its current summary.
type WorkspaceDTO struct {
	BasePay  float64            `json:"base_pay"`
	Mode     string             `json:"mode"`
	Rules    []factory.RuleJSON `json:"rules"`
	Days     []ShiftDTO         `json:"days"`
	Summary  SummaryDTO         `json:"summary"`
	Scenario string             `json:"scenario,omitempty"`
}

// ToggleResponse reports a day's selection state after a toggle.
type ToggleResponse struct {
	Date      string       `json:"date"`
	Selected  bool         `json:"selected"`
	Workspace WorkspaceDTO `json:"workspace"`
}

// LegacyRateDTO is one row of the legacy rate overview.
type LegacyRateDTO struct {
	Period     string  `json:"period"`
	Multiplier float64 `json:"multiplier"`
	Supplement string  `json:"supplement"`
	HourlyPay  float64 `json:"hourly_pay"`
}

// ScenarioDTO describes a sample scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toShiftDTO(iv earnings.WorkInterval) ShiftDTO {
	return ShiftDTO{
		Date:  iv.Date.String(),
		Start: earnings.FormatClock(iv.Start),
		End:   earnings.FormatClock(iv.End),
	}
}

func toSummaryDTO(s earnings.Summary) SummaryDTO {
	out := SummaryDTO{
		Total:          s.Total.Round(2).InexactFloat64(),
		TotalFormatted: export.FormatCurrency(s.Total),
		TotalHours:     s.TotalHours.InexactFloat64(),
		Days:           make([]DayDTO, 0, len(s.Breakdown)),
	}
	for _, d := range s.Breakdown {
		day := DayDTO{
			Date:          d.Date.String(),
			Weekday:       d.Weekday.String(),
			Start:         earnings.FormatClock(d.Start),
			End:           earnings.FormatClock(d.End),
			TotalHours:    d.TotalHours.InexactFloat64(),
			DailyEarnings: d.DailyEarnings.Round(2).InexactFloat64(),
			Segments:      make([]SegmentDTO, 0, len(d.Segments)),
		}
		for _, sg := range d.Segments {
			day.Segments = append(day.Segments, SegmentDTO{
				Start:      earnings.FormatClock(sg.StartHour),
				End:        earnings.FormatClock(sg.EndHour),
				Hours:      sg.Hours.InexactFloat64(),
				Multiplier: sg.Rate.Multiplier.InexactFloat64(),
				Label:      sg.Rate.Label,
				Supplement: payrates.FormatMultiplier(sg.Rate.Multiplier),
				Earnings:   sg.Earnings.Round(2).InexactFloat64(),
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}

func toWorkspaceDTO(w earnings.Workspace, scenario string) WorkspaceDTO {
	days := make([]ShiftDTO, 0, len(w.Days))
	for _, d := range w.Days {
		days = append(days, toShiftDTO(d))
	}
	return WorkspaceDTO{
		BasePay:  w.BasePay.InexactFloat64(),
		Mode:     string(w.Mode),
		Rules:    factory.RulesToJSON(w.Rules),
		Days:     days,
		Summary:  toSummaryDTO(w.Summary()),
		Scenario: scenario,
	}
}

func toLegacyRateDTOs(w earnings.Workspace) []LegacyRateDTO {
	rows := payrates.LegacyRows(earnings.LegacyFromRules(w.Rules))
	out := make([]LegacyRateDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, LegacyRateDTO{
			Period:     r.Period,
			Multiplier: r.Multiplier.InexactFloat64(),
			Supplement: payrates.FormatMultiplier(r.Multiplier),
			HourlyPay:  w.BasePay.Mul(r.Multiplier).Round(2).InexactFloat64(),
		})
	}
	return out
}
