package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/abdulachik/mesostic/internal/app"
	"github.com/abdulachik/mesostic/internal/config"
	"github.com/spf13/cobra"
)

// Book is a public-domain oracle text to download.
type Book struct {
	Filename string
	Title    string
	URL      string
}

// Oracle texts from Project Gutenberg.
var books = []Book{
	{
		Filename: "leaves-of-grass.txt",
		Title:    "Leaves of Grass",
		URL:      "https://www.gutenberg.org/cache/epub/1322/pg1322.txt",
	},
	{
		Filename: "the-waste-land.txt",
		Title:    "The Waste Land",
		URL:      "https://www.gutenberg.org/cache/epub/1321/pg1321.txt",
	},
	{
		Filename: "ulysses.txt",
		Title:    "Ulysses",
		URL:      "https://www.gutenberg.org/cache/epub/4300/pg4300.txt",
	},
	{
		Filename: "moby-dick.txt",
		Title:    "Moby Dick",
		URL:      "https://www.gutenberg.org/cache/epub/2701/pg2701.txt",
	},
	{
		Filename: "walden.txt",
		Title:    "Walden",
		URL:      "https://www.gutenberg.org/cache/epub/205/pg205.txt",
	},
	{
		Filename: "alice-in-wonderland.txt",
		Title:    "Alice's Adventures in Wonderland",
		URL:      "https://www.gutenberg.org/cache/epub/11/pg11.txt",
	},
}

var (
	downloadForce  bool
	downloadImport bool
	booksDir       string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download oracle texts from Project Gutenberg",
	Long: `Download public-domain oracle texts from Project Gutenberg to the books
directory (BOOKS_DIR, default books/).

Books downloaded:
  - Leaves of Grass
  - The Waste Land
  - Ulysses
  - Moby Dick
  - Walden
  - Alice's Adventures in Wonderland

With --import the books directory is added to the oracle library afterwards.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Re-download even if file exists")
	downloadCmd.Flags().BoolVar(&downloadImport, "import", false, "Import the books into the oracle library")
	downloadCmd.Flags().StringVar(&booksDir, "dir", "", "Directory to save books (default BOOKS_DIR)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if booksDir != "" {
		cfg.BooksDir = booksDir
	}
	if err := cfg.ValidateForLibrary(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if err := os.MkdirAll(cfg.BooksDir, 0755); err != nil {
		return fmt.Errorf("create books directory: %w", err)
	}

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Downloading oracle texts from Project Gutenberg...")
	fmt.Fprintln(out)

	downloaded := 0
	skipped := 0

	for _, book := range books {
		path := filepath.Join(cfg.BooksDir, book.Filename)

		if !downloadForce {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, "  ✓ %s (already downloaded)\n", book.Title)
				skipped++
				continue
			}
		}

		fmt.Fprintf(out, "  ↓ Downloading %s...", book.Title)

		if err := downloadFile(ctx, client, book.URL, path); err != nil {
			fmt.Fprintf(out, " ERROR: %v\n", err)
			slog.Error("failed to download book", "title", book.Title, "error", err)
			continue
		}

		fmt.Fprintln(out, " done")
		downloaded++
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Downloaded: %d, Skipped: %d\n", downloaded, skipped)
	fmt.Fprintf(out, "Books saved to: %s/\n", cfg.BooksDir)

	if !downloadImport {
		return nil
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer a.Close()

	results, err := a.Library.ImportDir(ctx)
	if err != nil {
		return fmt.Errorf("import books: %w", err)
	}
	printImportResults(out, results)
	return nil
}

// downloadFile writes to a temporary file first so an interrupted download
// never leaves a truncated book behind.
func downloadFile(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	tmp := path + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
