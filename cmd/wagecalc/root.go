package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/warp/wage-engine/config"
)

var (
	configPath string
	envFile    string

	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wagecalc",
	Short: "Shift wage calculator",
	Long: `wagecalc splits worked shifts into segments wherever the pay multiplier
changes, prices every segment and sums the result.

Settings come from an optional YAML file (--config), a .env file and
WAGE_* environment variables, e.g. WAGE_HTTP_ADDR=:9000.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(ratesCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath, envFile)
	if err != nil {
		return err
	}
	logger = cfg.Logger()
	return nil
}
