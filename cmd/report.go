package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/satheeshds/invoicer/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Short:   "Print an owner's dashboard as JSON",
	Example: `  invoicer report --owner 42 --months 12`,
	RunE:    runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("owner", "", "Owner ID (required)")
	reportCmd.Flags().Int("months", report.DefaultSeriesMonths, "Revenue series length")
	reportCmd.MarkFlagRequired("owner")
}

func runReport(cmd *cobra.Command, args []string) error {
	owner, _ := cmd.Flags().GetString("owner")
	months, _ := cmd.Flags().GetInt("months")

	ctx := cmd.Context()
	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer b.Close()

	invs, err := b.invoices.List(ctx, owner)
	if err != nil {
		return err
	}
	clients, err := b.store.ListClients(ctx, owner, "")
	if err != nil {
		return err
	}

	d := report.BuildDashboard(invs, len(clients), time.Now(), months)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
