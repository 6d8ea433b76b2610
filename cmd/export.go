package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/satheeshds/invoicer/logger"
	"github.com/satheeshds/invoicer/report"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an owner's invoices as CSV",
	Long: `Write the owner's invoices as CSV with the columns
Number, Date, Client, Status and Amount in the owner's currency.

The period, status and search filters work like the invoice listing.`,
	Example: `  # All invoices to stdout
  invoicer export --owner 42

  # This month's paid invoices to a file
  invoicer export --owner 42 --period month --status paid --out paid.csv`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("owner", "", "Owner ID (required)")
	exportCmd.Flags().String("period", "all", "all, month or year")
	exportCmd.Flags().String("status", "", "Only this status")
	exportCmd.Flags().String("search", "", "Search by client name or invoice number")
	exportCmd.Flags().StringP("out", "o", "", "Output file path (default: stdout)")
	exportCmd.MarkFlagRequired("owner")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	owner, _ := cmd.Flags().GetString("owner")
	period, _ := cmd.Flags().GetString("period")
	status, _ := cmd.Flags().GetString("status")
	search, _ := cmd.Flags().GetString("search")
	outPath, _ := cmd.Flags().GetString("out")

	f, err := report.ParseFilter(period, status, search, "", "")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := openBackend(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer b.Close()

	settings, err := b.settings.GetOrCreate(ctx, owner)
	if err != nil {
		return err
	}
	invs, err := b.invoices.List(ctx, owner)
	if err != nil {
		return err
	}
	invs = report.Apply(invs, f, time.Now())

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		out = file
	}
	if err := report.WriteCSV(out, invs, settings.Currency); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	log.Info().Str("owner_id", owner).Int("invoices", len(invs)).Str("output", outPath).Msg("export complete")
	return nil
}
