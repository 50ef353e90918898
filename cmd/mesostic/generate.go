package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/abdulachik/mesostic/internal/app"
	"github.com/abdulachik/mesostic/internal/config"
	"github.com/abdulachik/mesostic/internal/ingest"
	"github.com/abdulachik/mesostic/internal/meso"
	"github.com/abdulachik/mesostic/internal/render"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	genSeed        string
	genFile        string
	genOracle      string
	genIterations  int
	genSparsity    int
	genBreak       string
	genStripPunct  bool
	genKeepNumbers bool
	genWidth       int
	genRandSeed    uint64
	genOutput      string
	genNoColor     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a mesostic",
	Long: `Generate a mesostic poem whose spine spells --seed, using words from an
oracle text. The oracle comes from --file, from a stored oracle named with
--oracle, or from standard input.

A poem that runs out of spine words is still printed with the lines built
so far.`,
	Example: `  mesostic generate --seed "john cage" --oracle leaves-of-grass
  mesostic generate --seed "wake" --file books/ulysses.txt --iterations 3 --break word
  cat notes.txt | mesostic generate --seed "notes" -o json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genSeed, "seed", "s", "", "Spine phrase (required)")
	f.StringVar(&genFile, "file", "", "Read the oracle from a .txt, .md, .pdf or .docx file")
	f.StringVar(&genOracle, "oracle", "", "Use a stored oracle from the library")
	f.IntVarP(&genIterations, "iterations", "n", 0, "Times the spine is spelled out, 1-99 (default DEFAULT_ITERATIONS)")
	f.IntVar(&genSparsity, "sparsity", 0, "Wing sparsity: 2, 4 or 8 (default DEFAULT_SPARSITY)")
	f.StringVar(&genBreak, "break", "", "Blank lines: random or word (default BREAK_MODE)")
	f.BoolVar(&genStripPunct, "strip-punct", true, "Strip punctuation from oracle words (default STRIP_PUNCTUATION)")
	f.BoolVar(&genKeepNumbers, "keep-numbers", false, "Keep numeric oracle words")
	f.IntVar(&genWidth, "width", 0, "Characters allowed on each side of the spine (default LINE_WIDTH)")
	f.Uint64Var(&genRandSeed, "rand-seed", 0, "Seed for a reproducible poem (0 picks a random one)")
	f.StringVarP(&genOutput, "output", "o", "text", "Output format: text, html, json or yaml")
	f.BoolVar(&genNoColor, "no-color", false, "Disable terminal colors")
	_ = generateCmd.MarkFlagRequired("seed")
	generateCmd.MarkFlagsMutuallyExclusive("file", "oracle")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyGenerateFlags(cmd, cfg)

	if err := cfg.ValidateGeneration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	format, err := render.ParseFormat(genOutput)
	if err != nil {
		return err
	}

	oracleText, source, err := loadOracle(cmd, cfg)
	if err != nil {
		return err
	}

	opts := cfg.Options()
	if genRandSeed != 0 {
		opts.Rand = rand.New(rand.NewPCG(genRandSeed, genRandSeed))
	}

	res, err := meso.Generate(oracleText, genSeed, opts)
	if err != nil {
		if errors.Is(err, meso.ErrEmptySpine) {
			return fmt.Errorf("seed %q has no letters left after cleaning", genSeed)
		}
		return fmt.Errorf("generate mesostic: %w", err)
	}

	slog.Info("mesostic generated",
		"source", source,
		"status", res.Status,
		"lines", len(res.Lines),
		"oracle_tokens", res.OracleWords)

	return render.Write(cmd.OutOrStdout(), res, format, render.Options{
		Color: !genNoColor && format == render.FormatText,
	})
}

// applyGenerateFlags overrides configured defaults with flags the user set.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("iterations") {
		cfg.Iterations = genIterations
	}
	if f.Changed("sparsity") {
		cfg.Sparsity = genSparsity
	}
	if f.Changed("break") {
		cfg.BreakMode = genBreak
	}
	if f.Changed("strip-punct") {
		cfg.StripPunctuation = genStripPunct
	}
	if f.Changed("keep-numbers") {
		cfg.DropNumbers = !genKeepNumbers
	}
	if f.Changed("width") {
		cfg.LineWidth = genWidth
	}
}

// loadOracle returns the oracle text and a description of where it came from.
func loadOracle(cmd *cobra.Command, cfg *config.Config) (string, string, error) {
	switch {
	case genFile != "":
		parsed, err := ingest.ParseFile(genFile)
		if err != nil {
			return "", "", fmt.Errorf("read oracle file: %w", err)
		}
		return parsed.Text, genFile, nil

	case genOracle != "":
		if err := cfg.Validate(); err != nil {
			return "", "", fmt.Errorf("validate config: %w", err)
		}
		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return "", "", fmt.Errorf("open library: %w", err)
		}
		defer a.Close()

		o, err := a.Library.Get(cmd.Context(), genOracle)
		if err != nil {
			return "", "", err
		}
		return o.Text, "library:" + o.Name, nil

	default:
		text, err := readStdin(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return text, "stdin", nil
	}
}

func readStdin(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", fmt.Errorf("no oracle text: use --file, --oracle or pipe text on stdin")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no oracle text: use --file, --oracle or pipe text on stdin")
	}
	return text, nil
}
