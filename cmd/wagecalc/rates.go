package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/config"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/export"
	"github.com/warp/wage-engine/factory"
	"github.com/warp/wage-engine/payrates"
)

var ratesYAML bool

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the pay rates in force",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().StringVar(&rulesFile, "rules", "", "rate table file, YAML or JSON")
	ratesCmd.Flags().BoolVar(&ratesYAML, "yaml", false, "print the rate table as an editable YAML document")
}

func runRates(cmd *cobra.Command, args []string) error {
	ws, err := cfg.InitialWorkspace()
	if err != nil {
		return err
	}
	if rulesFile != "" {
		rc, err := config.LoadRules(rulesFile)
		if err != nil {
			return err
		}
		ws = rc.ApplyTo(ws)
	}

	out := cmd.OutOrStdout()
	if ratesYAML {
		data, err := factory.MarshalYAML(ws)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Base pay\t%s\n", export.FormatCurrency(ws.BasePay))
	fmt.Fprintf(tw, "Mode\t%s\n\n", ws.Mode)
	if ws.Mode == earnings.ModeCustom {
		for _, r := range ws.Rules {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				r.Name,
				payrates.DescribeDays(r.Days),
				payrates.DescribeRanges(r.Ranges),
				payrates.FormatMultiplier(r.Multiplier))
		}
	} else {
		for _, row := range payrates.LegacyRows(earnings.LegacyFromRules(ws.Rules)) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n",
				row.Period,
				payrates.FormatMultiplier(row.Multiplier),
				export.FormatCurrency(ws.BasePay.Mul(row.Multiplier)))
		}
	}
	return tw.Flush()
}
