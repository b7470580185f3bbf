package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/payrates"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageMargin   = 20.0
	contentWidth = 170.0
	rowHeight    = 8.0
	footerSpace  = 20.0
)

type column struct {
	title string
	width float64
	align string
}

// WritePDF writes t as an A4 timesheet.
func WritePDF(w io.Writer, t Timesheet) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerSpace)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := t.GeneratedAt.Format("02.01.2006 15:04:05")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(contentWidth/2, 10, tr("Generated: "+generated), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth/2, 10, fmt.Sprintf("Wage Calculator - page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdfHeader(pdf, tr, t)
	pdfSummaryBox(pdf, tr, t)
	pdfDayTable(pdf, tr, t)
	if t.IncludePay {
		pdfRateTable(pdf, tr, t)
		pdfTotal(pdf, t)
	}

	if err := pdf.Output(w); err != nil {
		return &Error{Format: FormatPDF, Err: err}
	}
	return nil
}

func pdfHeader(pdf *fpdf.Fpdf, tr func(string) string, t Timesheet) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 12, "TIMESHEET", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	half := contentWidth / 2
	pdf.CellFormat(half, 8, tr("Name: "+t.Employee.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 8, tr("Employee ID: "+t.Employee.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 8, tr("Department: "+t.Employee.Department), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 8, "Period: "+t.Period, "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func pdfSummaryBox(pdf *fpdf.Fpdf, tr func(string) string, t Timesheet) {
	y := pdf.GetY()
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(pageMargin, y, contentWidth, 25, "FD")

	pdf.SetXY(pageMargin+5, y+3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 6, "SUMMARY", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(pageMargin + 5)
	pdf.CellFormat(95, 6, "Total hours: "+FormatHours(t.TotalHours), "", 0, "L", false, 0, "")
	if t.IncludePay {
		pdf.CellFormat(70, 6, "Total earnings: "+FormatCurrency(t.TotalEarnings), "", 0, "L", false, 0, "")
	}
	pdf.Ln(6)
	pdf.SetX(pageMargin + 5)
	pdf.CellFormat(95, 6, fmt.Sprintf("Work days: %d", t.DayCount()), "", 0, "L", false, 0, "")
	if t.IncludePay {
		pdf.CellFormat(70, 6, tr("Base pay: "+FormatCurrency(t.BasePay)+"/hour"), "", 0, "L", false, 0, "")
	}
	pdf.SetY(y + 35)
}

func pdfDayTable(pdf *fpdf.Fpdf, tr func(string) string, t Timesheet) {
	cols := []column{
		{"Date", 60, "L"},
		{"Start", 25, "C"},
		{"End", 25, "C"},
		{"Hours", 25, "C"},
	}
	if t.IncludePay {
		cols[0].width = 50
		cols = append(cols, column{"Earnings", 45, "R"})
	}

	pdfTableHead(pdf, cols, payrates.ColorBlue)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range t.Rows {
		if pdfNeedsBreak(pdf) {
			pdf.AddPage()
			pdfTableHead(pdf, cols, payrates.ColorBlue)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
		}
		cells := []string{
			tr(FormatDay(r.Date)),
			earnings.FormatClock(r.Start),
			earnings.FormatClock(r.End),
			FormatHours(r.Hours),
		}
		if t.IncludePay {
			cells = append(cells, FormatCurrency(r.Earnings))
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, rowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(10)
}

func pdfRateTable(pdf *fpdf.Fpdf, tr func(string) string, t Timesheet) {
	if pdfNeedsBreak(pdf) {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 10, "PAY DETAILS", "", 1, "L", false, 0, "")

	cols := []column{
		{"Period", 100, "L"},
		{"Factor", 30, "C"},
		{"Hourly pay", 40, "R"},
	}
	pdfTableHead(pdf, cols, payrates.ColorGreen)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range t.Rates {
		if pdfNeedsBreak(pdf) {
			pdf.AddPage()
			pdfTableHead(pdf, cols, payrates.ColorGreen)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(0, 0, 0)
		}
		cr, cg, cb := payrates.Tint(r.Color)
		pdf.SetFillColor(int(cr), int(cg), int(cb))
		cells := []string{tr(r.Period), payrates.FormatFactor(r.Multiplier), FormatCurrency(r.HourlyPay)}
		for i, c := range cols {
			pdf.CellFormat(c.width, rowHeight-1, cells[i], "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func pdfTotal(pdf *fpdf.Fpdf, t Timesheet) {
	if pdfNeedsBreak(pdf) {
		pdf.AddPage()
	}
	br, bg, bb := payrates.RGB(payrates.ColorBlue)
	tr, tg, tb := payrates.Tint(payrates.ColorBlue)
	pdf.SetDrawColor(int(br), int(bg), int(bb))
	pdf.SetFillColor(int(tr), int(tg), int(tb))
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, 15, "  TOTAL EARNINGS: "+FormatCurrency(t.TotalEarnings), "1", 1, "L", true, 0, "")
}

func pdfTableHead(pdf *fpdf.Fpdf, cols []column, color string) {
	r, g, b := payrates.RGB(color)
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)
}

func pdfNeedsBreak(pdf *fpdf.Fpdf) bool {
	_, pageHeight := pdf.GetPageSize()
	return pdf.GetY()+rowHeight*2 > pageHeight-footerSpace
}
