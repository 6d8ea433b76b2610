package cmd

import (
	"fmt"
	"os"

	"github.com/satheeshds/invoicer/config"
	"github.com/satheeshds/invoicer/logger"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// appConfig is set by Execute before any command runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - invoice generation and lifecycle service",
	Long: `Invoicer issues numbered invoices with VAT and discount totals, tracks
their status from draft to paid or cancelled, and reports revenue.

Run "invoicer serve" for the HTTP API, or use the export and report
commands against the configured store.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the loaded configuration.
func Execute(cfg *config.Config) {
	log := logger.WithComponent("cmd")
	appConfig = cfg

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
