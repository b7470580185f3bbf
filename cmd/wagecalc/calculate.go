package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/export"
	"github.com/warp/wage-engine/payrates"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate DATE START END [DATE START END ...]",
	Short: "Print the segment breakdown and total for shifts",
	Example: `  wagecalc calculate 2025-01-06 07:00 23:00
  wagecalc calculate --base-pay 250 2025-01-11 22:00 06:00`,
	RunE: runCalculate,
}

func init() {
	addWorkspaceFlags(calculateCmd)
}

func runCalculate(cmd *cobra.Command, args []string) error {
	ws, err := workspaceFor(cmd, args)
	if err != nil {
		return err
	}

	summary := ws.Summary()
	logger.Debug().
		Int("days", len(summary.Breakdown)).
		Int("segments", summary.SegmentCount()).
		Str("mode", string(ws.Mode)).
		Msg("calculated")

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func printSummary(out io.Writer, s earnings.Summary) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, day := range s.Breakdown {
		fmt.Fprintf(tw, "%s\t%s\t\t%s h\t%s\n",
			export.FormatDay(day.Date),
			earnings.FormatTimeRange(day.Start, day.End),
			export.FormatHours(day.TotalHours),
			export.FormatCurrency(day.DailyEarnings))
		for _, seg := range day.Segments {
			fmt.Fprintf(tw, "\t%s\t%s %s\t%s h\t%s\n",
				earnings.FormatTimeRange(seg.StartHour, seg.EndHour),
				seg.Rate.Label,
				payrates.FormatFactor(seg.Rate.Multiplier),
				export.FormatHours(seg.Hours),
				export.FormatCurrency(seg.Earnings))
		}
	}
	fmt.Fprintf(tw, "Total\t\t\t%s h\t%s\n", export.FormatHours(s.TotalHours), export.FormatCurrency(s.Total))
	tw.Flush()
}
