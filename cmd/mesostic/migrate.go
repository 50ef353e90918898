package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/abdulachik/mesostic/internal/config"
	"github.com/abdulachik/mesostic/internal/db"
	"github.com/spf13/cobra"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply oracle library schema migrations",
	Long: `Create or update the oracle library schema at DATABASE_PATH.
With --status the migrations are listed without applying anything.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "List migrations and whether they have run")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open library database: %w", err)
	}
	defer store.Close()

	before, err := store.Migrations(ctx)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	out := cmd.OutOrStdout()
	if migrateStatus {
		printMigrations(out, before)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pending := 0
	for _, m := range before {
		if !m.Applied {
			pending++
		}
	}
	slog.Info("library schema up to date", "path", cfg.DatabasePath, "applied", pending)
	fmt.Fprintf(out, "Applied %d of %d migrations to %s\n", pending, len(before), cfg.DatabasePath)
	return nil
}

func printMigrations(w io.Writer, migrations []db.Migration) {
	for _, m := range migrations {
		state := "pending"
		if m.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "  %-24s %s\n", m.Version, state)
	}
}
