package main

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Show which shift a timestamp falls in",
	Long: `Classify a timestamp into the Morning or Evening shift the same way invoices
are classified at creation. The zone defaults to the local zone.`,
	Example: `  ledgerctl shift
  ledgerctl shift --at 2024-03-14T19:05:00Z --tz Asia/Kolkata`,
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
	shiftCmd.Flags().String("at", "", "RFC 3339 timestamp (default: now)")
	shiftCmd.Flags().String("tz", "Local", "IANA zone name used for classification")
}

func runShift(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetString("at")
	tz, _ := cmd.Flags().GetString("tz")

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown time zone %q: %w", tz, err)
	}

	t := time.Now()
	if at != "" {
		t, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("invalid --at, use RFC 3339: %w", err)
		}
	}

	local := t.In(loc)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", local.Format(time.RFC3339), domain.ClassifyShift(local))
	return nil
}
