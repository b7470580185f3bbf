package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/config"
	"github.com/warp/wage-engine/earnings"
)

// Flags shared by calculate and export.
var (
	basePay       float64
	rulesFile     string
	splitMidnight bool
)

func addWorkspaceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&basePay, "base-pay", 0, "hourly base pay (default from config)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "rate table file, YAML or JSON")
	cmd.Flags().BoolVar(&splitMidnight, "split-midnight", true, "split shifts ending before they start at midnight")
}

// parseShifts reads DATE START END triples, e.g. 2025-01-06 07:00 15:00.
func parseShifts(args []string, split bool) ([]earnings.WorkInterval, error) {
	if len(args) == 0 || len(args)%3 != 0 {
		return nil, fmt.Errorf("expected DATE START END triples, got %d arguments", len(args))
	}

	var out []earnings.WorkInterval
	for i := 0; i < len(args); i += 3 {
		iv, err := earnings.ParseWorkInterval(args[i], args[i+1], args[i+2])
		if err != nil {
			return nil, fmt.Errorf("shift %d: %w", i/3+1, err)
		}
		if split {
			out = append(out, earnings.SplitAtMidnight(iv.Date, iv.Start, iv.End)...)
		} else {
			out = append(out, iv)
		}
	}
	return out, nil
}

// workspaceFor builds the workspace a command works on: configured rules and
// base pay, overridden by --rules and --base-pay, holding the given shifts.
func workspaceFor(cmd *cobra.Command, args []string) (earnings.Workspace, error) {
	ws, err := cfg.InitialWorkspace()
	if err != nil {
		return earnings.Workspace{}, err
	}
	if rulesFile != "" {
		rc, err := config.LoadRules(rulesFile)
		if err != nil {
			return earnings.Workspace{}, err
		}
		ws = rc.ApplyTo(ws)
	}
	if cmd.Flags().Changed("base-pay") {
		if basePay < 0 {
			return earnings.Workspace{}, fmt.Errorf("base pay must not be negative, got %v", basePay)
		}
		ws.BasePay = decimal.NewFromFloat(basePay)
	}

	ws.Days, err = parseShifts(args, splitMidnight)
	if err != nil {
		return earnings.Workspace{}, err
	}
	return ws, nil
}
