package main

import (
	"fmt"

	"github.com/abdulachik/mesostic/internal/app"
	"github.com/abdulachik/mesostic/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show oracle library statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer a.Close()

	stats, err := a.Library.Stats(ctx)
	if err != nil {
		return err
	}

	oracles, err := a.Library.List(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Mesostic Library ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
	fmt.Fprintf(out, "Books dir: %s\n", cfg.BooksDir)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Oracles: %d\n", stats.Oracles)
	fmt.Fprintf(out, "Words:   %d\n", stats.Words)

	if len(oracles) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "By oracle:")
		for _, o := range oracles {
			fmt.Fprintf(out, "  %s: %d\n", o.Name, o.WordCount)
		}
	}

	return nil
}
