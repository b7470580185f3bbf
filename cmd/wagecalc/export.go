package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/export"
)

var (
	exportFormat string
	exportOut    string
	includePay   bool
	employee     export.Employee
)

var exportCmd = &cobra.Command{
	Use:     "export DATE START END [DATE START END ...]",
	Short:   "Write a PDF or XLSX timesheet for shifts",
	Example: `  wagecalc export --format xlsx --name "Kari Nordmann" 2025-01-06 07:00 15:00 2025-01-07 07:00 15:00`,
	RunE:    runExport,
}

func init() {
	addWorkspaceFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatPDF, "Output format: pdf, xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default Timesheet_<name>_<period>.<format>)")
	exportCmd.Flags().BoolVar(&includePay, "include-pay", true, "include hourly pay and earnings")
	exportCmd.Flags().StringVar(&employee.Name, "name", "", "employee name")
	exportCmd.Flags().StringVar(&employee.ID, "employee-id", "", "employee number")
	exportCmd.Flags().StringVar(&employee.Department, "department", "", "department")
}

func runExport(cmd *cobra.Command, args []string) error {
	ws, err := workspaceFor(cmd, args)
	if err != nil {
		return err
	}

	ts := export.Build(ws, export.Options{
		Employee:    employee,
		IncludePay:  includePay,
		GeneratedAt: time.Now(),
	})

	var buf bytes.Buffer
	if err := export.Render(&buf, exportFormat, ts); err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = export.FileName(ts, exportFormat)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	logger.Info().Str("file", out).Str("format", exportFormat).Int("days", ts.DayCount()).Msg("timesheet written")
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
