package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/core/services"
	"github.com/SscSPs/invoice_ledger/internal/platform/config"
	"github.com/SscSPs/invoice_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operator tooling for the invoice ledger",
	Long: `ledgerctl runs maintenance tasks against the invoice ledger database:
schema migrations, resuming stalled payments, auditing party balances and
checking shift classification.

Configuration is read from the same environment variables (and .env file)
as the API server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

// ledgerRuntime bundles what database-backed commands need.
type ledgerRuntime struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func (r *ledgerRuntime) Close() {
	database.ClosePgxPool(r.pool)
}

// openRuntime loads configuration and wires the services over a live pool.
func openRuntime(ctx context.Context) (*ledgerRuntime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	return &ledgerRuntime{
		cfg:      cfg,
		pool:     pool,
		services: services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)),
	}, nil
}
