package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

const systemUser = "ledgerctl"

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Resume payments that stopped before updating the party balance",
	Long: `Find payment intents that have not reached BalanceUpdated and have not been
touched for the grace period, then re-drive each from its last completed stage.

Defaults come from RECONCILE_GRACE_PERIOD and RECONCILE_BATCH_SIZE.`,
	Example: `  ledgerctl reconcile
  ledgerctl reconcile --grace 30m --batch-size 200`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().Duration("grace", 0, "Only resume intents idle for at least this long")
	reconcileCmd.Flags().Int("batch-size", 0, "Maximum number of intents to resume")
	reconcileCmd.Flags().String("user", systemUser, "Author recorded on resumed writes")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	grace, _ := cmd.Flags().GetDuration("grace")
	if grace <= 0 {
		grace = rt.cfg.ReconcileGraceAfter
	}
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	if batchSize <= 0 {
		batchSize = rt.cfg.ReconcileBatchSize
	}
	user, _ := cmd.Flags().GetString("user")

	slog.Info("Reconciling payment intents",
		slog.Duration("grace", grace),
		slog.Int("batch_size", batchSize),
		slog.Time("cutoff", time.Now().Add(-grace)),
	)

	summary, err := rt.services.Payment.ReconcilePendingPayments(ctx, grace, batchSize, user)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d of %d payment intents could not be completed", len(summary.Failed), summary.Scanned)
	}
	return nil
}
