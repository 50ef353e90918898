// Package library stores oracle texts so poems can be generated from them
// by name.
package library

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/abdulachik/mesostic/internal/db"
	"github.com/abdulachik/mesostic/internal/ingest"
	"github.com/abdulachik/mesostic/internal/meso"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOracleNotFound is returned when no oracle has the requested name.
	ErrOracleNotFound = errors.New("oracle not found")
	// ErrOracleExists is returned when a different text already uses the name.
	ErrOracleExists = errors.New("oracle name already in use")
)

// defaultParseWorkers bounds concurrent file parsing in ImportFiles.
const defaultParseWorkers = 4

// Oracle is a stored source text.
type Oracle struct {
	ID         string
	Name       string
	SourcePath string
	Text       string
	WordCount  int
	CreatedAt  time.Time
}

// ImportResult describes the outcome of importing one text.
type ImportResult struct {
	ID        string
	Name      string
	Path      string
	WordCount int
	// Duplicate is set when the same text was already stored, possibly
	// under another name. Nothing is written in that case.
	Duplicate bool
}

// Stats summarises the library.
type Stats struct {
	Oracles int64
	Words   int64
}

// Config holds configuration for the library.
type Config struct {
	Store    *db.Store
	BooksDir string
	// Workers bounds concurrent file parsing (default 4).
	Workers int
	// Normalize is the oracle cleanup used to count words. It should match
	// the generation settings so word counts equal the tokens a poem sees.
	Normalize meso.OracleOptions
}

// Library imports, lists and removes oracles.
type Library struct {
	store     *db.Store
	booksDir  string
	workers   int
	normalize meso.OracleOptions
}

// New creates a new Library.
func New(cfg Config) *Library {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultParseWorkers
	}
	return &Library{
		store:     cfg.Store,
		booksDir:  cfg.BooksDir,
		workers:   workers,
		normalize: cfg.Normalize,
	}
}

// Import stores text under name. The word count is the number of oracle
// tokens the generator will see with the configured normalization.
func (l *Library) Import(ctx context.Context, name, sourcePath, text string) (*ImportResult, error) {
	tokens, err := meso.NormalizeOracle(text, l.normalize)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}

	sum := sha256.Sum256([]byte(text))
	hash := hex.EncodeToString(sum[:])

	var result *ImportResult
	err = l.store.InTx(ctx, func(tx *sql.Tx) error {
		q := l.store.WithTx(tx)

		existing, err := q.GetOracleByHash(ctx, hash)
		if err == nil {
			result = &ImportResult{
				ID:        existing.ID,
				Name:      existing.Name,
				Path:      sourcePath,
				WordCount: int(existing.WordCount),
				Duplicate: true,
			}
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check duplicate: %w", err)
		}

		if _, err := q.GetOracleByName(ctx, name); err == nil {
			return fmt.Errorf("%w: %s", ErrOracleExists, name)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check name: %w", err)
		}

		created, err := q.CreateOracle(ctx, db.CreateOracleParams{
			ID:         uuid.NewString(),
			Name:       name,
			SourcePath: sql.NullString{String: sourcePath, Valid: sourcePath != ""},
			Text:       text,
			TextHash:   hash,
			WordCount:  int64(len(tokens)),
		})
		if err != nil {
			return fmt.Errorf("save oracle: %w", err)
		}

		result = &ImportResult{
			ID:        created.ID,
			Name:      created.Name,
			Path:      sourcePath,
			WordCount: int(created.WordCount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		slog.Debug("oracle already stored", "name", result.Name, "path", sourcePath)
	} else {
		slog.Info("oracle imported", "name", result.Name, "words", result.WordCount)
	}
	return result, nil
}

// ImportFiles parses paths concurrently and stores them one at a time in
// the given order. Each oracle is named after its file.
func (l *Library) ImportFiles(ctx context.Context, paths []string) ([]ImportResult, error) {
	parsed := make([]*ingest.Parsed, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := ingest.ParseFile(path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			parsed[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]ImportResult, 0, len(parsed))
	for _, p := range parsed {
		res, err := l.Import(ctx, p.Title, p.SourcePath, p.Text)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// ImportDir imports every supported file in the books directory.
func (l *Library) ImportDir(ctx context.Context) ([]ImportResult, error) {
	entries, err := os.ReadDir(l.booksDir)
	if err != nil {
		return nil, fmt.Errorf("read books directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !ingest.Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(l.booksDir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		slog.Warn("no oracle files found", "dir", l.booksDir)
		return nil, nil
	}
	return l.ImportFiles(ctx, paths)
}

// Get returns the oracle called name.
func (l *Library) Get(ctx context.Context, name string) (*Oracle, error) {
	row, err := l.store.GetOracleByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrOracleNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get oracle: %w", err)
	}
	return &Oracle{
		ID:         row.ID,
		Name:       row.Name,
		SourcePath: row.SourcePath.String,
		Text:       row.Text,
		WordCount:  int(row.WordCount),
		CreatedAt:  row.CreatedAt,
	}, nil
}

// List returns all oracles without their text, ordered by name.
func (l *Library) List(ctx context.Context) ([]Oracle, error) {
	rows, err := l.store.ListOracles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list oracles: %w", err)
	}

	oracles := make([]Oracle, 0, len(rows))
	for _, row := range rows {
		oracles = append(oracles, Oracle{
			ID:         row.ID,
			Name:       row.Name,
			SourcePath: row.SourcePath.String,
			WordCount:  int(row.WordCount),
			CreatedAt:  row.CreatedAt,
		})
	}
	return oracles, nil
}

// Remove deletes the oracle called name.
func (l *Library) Remove(ctx context.Context, name string) error {
	n, err := l.store.DeleteOracleByName(ctx, name)
	if err != nil {
		return fmt.Errorf("remove oracle: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrOracleNotFound, name)
	}
	slog.Info("oracle removed", "name", name)
	return nil
}

// Stats returns oracle and word totals.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	count, err := l.store.CountOracles(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count oracles: %w", err)
	}
	words, err := l.store.SumWordCount(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count words: %w", err)
	}
	return Stats{Oracles: count, Words: words}, nil
}
