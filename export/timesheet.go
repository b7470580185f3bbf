/*
Package export renders a workspace as a printable timesheet.

PURPOSE:
  Builds a Timesheet from the current workspace (rows sorted by date,
  period, totals, the rate table in force) and writes it as PDF or XLSX.
  The workspace is only read; a failed export leaves it untouched and can
  simply be retried.

FORMATS:
  pdf:  A4 document with header, employee block, summary box, day table,
        pay-rate table, total and a footer on every page (fpdf)
  xlsx: Workbook with a "Timesheet" and a "Rates" sheet (excelize)

USAGE:
  ts := export.Build(ws, export.Options{Employee: emp, IncludePay: true})
  err := export.Render(w, export.FormatPDF, ts)
  name := export.FileName(ts, export.FormatPDF)

SEE ALSO:
  - format.go: Number and date formatting
  - pdf.go, xlsx.go: Writers
*/
package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
)

// Supported formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// NotSpecified replaces blank employee fields.
const NotSpecified = "Not specified"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrExportFailed is returned when a document could not be written.
	ErrExportFailed = errors.New("export failed")

	// ErrUnknownFormat is returned for formats other than pdf and xlsx.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Error records which format failed and why.
type Error struct {
	Format string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() []error { return []error{ErrExportFailed, e.Err} }

// =============================================================================
// TIMESHEET MODEL
// =============================================================================

// Employee identifies who the timesheet is for.
type Employee struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Department string `json:"department"`
}

func (e Employee) withDefaults() Employee {
	orDefault := func(s string) string {
		if s = strings.TrimSpace(s); s == "" {
			return NotSpecified
		}
		return s
	}
	return Employee{Name: orDefault(e.Name), ID: orDefault(e.ID), Department: orDefault(e.Department)}
}

// Options controls what goes into a timesheet.
type Options struct {
	Employee    Employee
	IncludePay  bool
	GeneratedAt time.Time
}

// Row is one worked day.
type Row struct {
	Date     earnings.Date
	Weekday  time.Weekday
	Start    decimal.Decimal
	End      decimal.Decimal
	Hours    decimal.Decimal
	Earnings decimal.Decimal
	Segments []earnings.Segment
}

// RateRow is one line of the pay-rate overview.
type RateRow struct {
	Period     string
	Multiplier decimal.Decimal
	HourlyPay  decimal.Decimal
	Color      string
}

// Timesheet is everything a writer needs. Totals are copied from the
// engine's Summary, so printed numbers always match the calculator.
type Timesheet struct {
	Employee      Employee
	IncludePay    bool
	BasePay       decimal.Decimal
	Mode          earnings.RateMode
	Rows          []Row
	Rates         []RateRow
	Period        string
	TotalHours    decimal.Decimal
	TotalEarnings decimal.Decimal
	GeneratedAt   time.Time
}

// DayCount returns the number of worked days.
func (t Timesheet) DayCount() int { return len(t.Rows) }

// Build assembles a timesheet from a workspace.
func Build(w earnings.Workspace, opts Options) Timesheet {
	summary := w.Summary()

	rows := make([]Row, 0, len(summary.Breakdown))
	for _, d := range summary.Breakdown {
		rows = append(rows, Row{
			Date:     d.Date,
			Weekday:  d.Weekday,
			Start:    d.Start,
			End:      d.End,
			Hours:    d.TotalHours,
			Earnings: d.DailyEarnings,
			Segments: d.Segments,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	return Timesheet{
		Employee:      opts.Employee.withDefaults(),
		IncludePay:    opts.IncludePay,
		BasePay:       w.BasePay,
		Mode:          w.Mode,
		Rows:          rows,
		Rates:         rateRows(w),
		Period:        period(rows),
		TotalHours:    summary.TotalHours,
		TotalEarnings: summary.Total,
		GeneratedAt:   generated,
	}
}

func rateRows(w earnings.Workspace) []RateRow {
	var out []RateRow
	if w.Mode == earnings.ModeCustom {
		for _, r := range w.Rules {
			out = append(out, RateRow{
				Period:     r.Name + " " + payrates.DescribeDays(r.Days) + " " + payrates.DescribeRanges(r.Ranges),
				Multiplier: r.Multiplier,
				HourlyPay:  r.Rate().HourlyPay(w.BasePay),
				Color:      r.Color,
			})
		}
		return out
	}
	for _, lr := range payrates.LegacyRows(earnings.LegacyFromRules(w.Rules)) {
		out = append(out, RateRow{
			Period:     lr.Period,
			Multiplier: lr.Multiplier,
			HourlyPay:  w.BasePay.Mul(lr.Multiplier),
			Color:      payrates.ColorGreen,
		})
	}
	return out
}

func period(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	first, last := rows[0].Date, rows[len(rows)-1].Date
	if first == last {
		return FormatDate(first)
	}
	return FormatDate(first) + " - " + FormatDate(last)
}

// =============================================================================
// OUTPUT
// =============================================================================

var whitespace = regexp.MustCompile(`\s+`)

// FileName returns "Timesheet_<name>_<period>.<ext>" with whitespace
// replaced by underscores.
func FileName(t Timesheet, ext string) string {
	name := whitespace.ReplaceAllString(t.Employee.Name, "_")
	p := whitespace.ReplaceAllString(t.Period, "_")
	if p == "" {
		p = "empty"
	}
	return fmt.Sprintf("Timesheet_%s_%s.%s", name, p, ext)
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Render writes t in the given format.
func Render(w io.Writer, format string, t Timesheet) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
