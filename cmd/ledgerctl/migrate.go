package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_ledger/internal/platform/config"
	"github.com/SscSPs/invoice_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back schema migrations",
	Long: `Apply every pending migration (up, the default) or roll back the most
recent one (down). The migration source defaults to MIGRATIONS_PATH.`,
	Example: `  ledgerctl migrate
  ledgerctl migrate down --source file://./migrations`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("source", "", "Migration source URL (overrides MIGRATIONS_PATH)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := database.MigrateUp
	if len(args) == 1 {
		direction = database.MigrationDirection(args[0])
	}
	if direction != database.MigrateUp && direction != database.MigrateDown {
		return fmt.Errorf("direction must be up or down, got %q", args[0])
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.MigrationsPath
	}

	changed, err := database.RunMigrations(cfg.DatabaseURL, source, direction, slog.Default())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: changed=%t\n", direction, changed)
	return nil
}
