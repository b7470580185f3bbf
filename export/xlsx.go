package export

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/earnings"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	SheetTimesheet = "Timesheet"
	SheetRates     = "Rates"
)

// Number formats of the workbook. Excel renders the separators in the
// reader's locale, so Norwegian installs show "NOK 4 050,00".
const (
	MoneyNumFmt = `"NOK "#,##0.00`
	HoursNumFmt = "0.0"
)

// WriteXLSX writes t as a workbook. Hours and money are stored as numbers
// so the sheet can be summed; number formats only change how they print.
func WriteXLSX(w io.Writer, t Timesheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetTimesheet); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}
	if err := writeTimesheetSheet(f, t); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}
	if _, err := f.NewSheet(SheetRates); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}
	if err := writeRatesSheet(f, t); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}

	if err := f.Write(w); err != nil {
		return &Error{Format: FormatXLSX, Err: err}
	}
	return nil
}

// numberStyles registers the money and hours cell styles.
func numberStyles(f *excelize.File) (money, hours int, err error) {
	moneyFmt, hoursFmt := MoneyNumFmt, HoursNumFmt
	if money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return 0, 0, err
	}
	if hours, err = f.NewStyle(&excelize.Style{CustomNumFmt: &hoursFmt}); err != nil {
		return 0, 0, err
	}
	return money, hours, nil
}

func styleCell(f *excelize.File, sheet string, col, row, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func writeTimesheetSheet(f *excelize.File, t Timesheet) error {
	sheet := SheetTimesheet
	moneyStyle, hoursStyle, err := numberStyles(f)
	if err != nil {
		return err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3B82F6"}},
	})
	if err != nil {
		return err
	}

	info := [][]interface{}{
		{"Name", t.Employee.Name},
		{"Employee ID", t.Employee.ID},
		{"Department", t.Employee.Department},
		{"Period", t.Period},
		{"Work days", t.DayCount()},
	}
	if t.IncludePay {
		info = append(info, []interface{}{"Base pay", number(t.BasePay)})
	}
	row := 1
	for i := range info {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &info[i]); err != nil {
			return err
		}
		row++
	}
	if t.IncludePay {
		if err := styleCell(f, sheet, 2, row-1, moneyStyle); err != nil {
			return err
		}
	}
	row++

	header := []interface{}{"Date", "Weekday", "Start", "End", "Hours"}
	if t.IncludePay {
		header = append(header, "Earnings")
	}
	headCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, headCell, &header); err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(header), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, headCell, lastCell, headStyle); err != nil {
		return err
	}
	row++

	for _, r := range t.Rows {
		excelRow := []interface{}{
			FormatDate(r.Date),
			r.Weekday.String(),
			earnings.FormatClock(r.Start),
			earnings.FormatClock(r.End),
			number(r.Hours),
		}
		if t.IncludePay {
			excelRow = append(excelRow, number(r.Earnings))
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return err
		}
		if err := styleNumbers(f, sheet, row, t.IncludePay, moneyStyle, hoursStyle); err != nil {
			return err
		}
		row++
	}

	total := []interface{}{"Total", "", "", "", number(t.TotalHours)}
	if t.IncludePay {
		total = append(total, number(t.TotalEarnings))
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &total); err != nil {
		return err
	}
	if err := styleNumbers(f, sheet, row, t.IncludePay, moneyStyle, hoursStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "B", 16); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "F", "F", 16)
}

// styleNumbers formats the hours (E) and earnings (F) cells of a day or
// total row.
func styleNumbers(f *excelize.File, sheet string, row int, withPay bool, money, hours int) error {
	if err := styleCell(f, sheet, 5, row, hours); err != nil {
		return err
	}
	if !withPay {
		return nil
	}
	return styleCell(f, sheet, 6, row, money)
}

func writeRatesSheet(f *excelize.File, t Timesheet) error {
	sheet := SheetRates
	moneyStyle, _, err := numberStyles(f)
	if err != nil {
		return err
	}
	header := []interface{}{"Period", "Factor"}
	if t.IncludePay {
		header = append(header, "Hourly pay")
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range t.Rates {
		excelRow := []interface{}{r.Period, number(r.Multiplier)}
		if t.IncludePay {
			excelRow = append(excelRow, number(r.HourlyPay))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return err
		}
		if t.IncludePay {
			if err := styleCell(f, sheet, 3, i+2, moneyStyle); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(sheet, "C", "C", 16); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 40)
}

func number(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
