package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abdulachik/mesostic/internal/app"
	"github.com/abdulachik/mesostic/internal/config"
	"github.com/abdulachik/mesostic/internal/library"
	"github.com/spf13/cobra"
)

var showFull bool

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage stored oracle texts",
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [FILES...]",
	Short: "Import oracle files (.txt, .md, .pdf, .docx)",
	Long: `Import oracle files into the library. Each oracle is named after its file.
Without arguments every supported file in BOOKS_DIR is imported.`,
	RunE: runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored oracles",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a stored oracle",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a stored oracle",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryShowCmd.Flags().BoolVar(&showFull, "full", false, "Print the whole text")

	libraryCmd.AddCommand(libraryImportCmd, libraryListCmd, libraryShowCmd, libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForLibrary(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return a, nil
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var results []library.ImportResult
	if len(args) == 0 {
		results, err = a.Library.ImportDir(cmd.Context())
	} else {
		results, err = a.Library.ImportFiles(cmd.Context(), args)
	}
	printImportResults(cmd.OutOrStdout(), results)
	if err != nil {
		return fmt.Errorf("import oracles: %w", err)
	}
	return nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	oracles, err := a.Library.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(oracles) == 0 {
		fmt.Fprintln(out, "No oracles stored. Run 'mesostic download --import' or 'mesostic library import FILE'.")
		return nil
	}
	for _, o := range oracles {
		fmt.Fprintf(out, "%-30s %8d words  %s\n", o.Name, o.WordCount, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	o, err := a.Library.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:    %s\n", o.Name)
	fmt.Fprintf(out, "ID:      %s\n", o.ID)
	if o.SourcePath != "" {
		fmt.Fprintf(out, "Source:  %s\n", o.SourcePath)
	}
	fmt.Fprintf(out, "Words:   %d\n", o.WordCount)
	fmt.Fprintf(out, "Added:   %s\n", o.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(out)

	if showFull {
		fmt.Fprintln(out, o.Text)
	} else {
		fmt.Fprintln(out, excerpt(o.Text, 10))
	}
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Library.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, library.ErrOracleNotFound) {
			return fmt.Errorf("no oracle named %q", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func printImportResults(w io.Writer, results []library.ImportResult) {
	for _, r := range results {
		if r.Duplicate {
			fmt.Fprintf(w, "  = %s (already stored as %s)\n", r.Path, r.Name)
			continue
		}
		fmt.Fprintf(w, "  + %s (%d words)\n", r.Name, r.WordCount)
	}
}

// excerpt returns the first n lines of text.
func excerpt(text string, n int) string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}
