package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abdulachik/mesostic/internal/meso"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Oracle sources
	BooksDir string // Directory for downloaded oracle texts (default: books)

	// Logging
	LogLevel string

	// Generation defaults, overridable per command
	Iterations       int
	Sparsity         int
	LineWidth        int
	BreakMode        string
	StripPunctuation bool
	DropNumbers      bool
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "data/mesostic.db"),
		BooksDir:     getEnv("BOOKS_DIR", "books"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		BreakMode:    getEnv("BREAK_MODE", string(meso.BreakRandom)),
	}

	// Parse integers
	var err error
	cfg.Iterations, err = strconv.Atoi(getEnv("DEFAULT_ITERATIONS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ITERATIONS: %w", err)
	}

	cfg.Sparsity, err = strconv.Atoi(getEnv("DEFAULT_SPARSITY", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_SPARSITY: %w", err)
	}

	cfg.LineWidth, err = strconv.Atoi(getEnv("LINE_WIDTH", strconv.Itoa(meso.DefaultLineWidth)))
	if err != nil {
		return nil, fmt.Errorf("invalid LINE_WIDTH: %w", err)
	}

	// Parse booleans
	cfg.StripPunctuation, err = strconv.ParseBool(getEnv("STRIP_PUNCTUATION", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid STRIP_PUNCTUATION: %w", err)
	}

	cfg.DropNumbers, err = strconv.ParseBool(getEnv("DROP_NUMBERS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DROP_NUMBERS: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateGeneration checks the generation settings against the limits
// the generator accepts.
func (c *Config) ValidateGeneration() error {
	if c.Iterations < 1 || c.Iterations > 99 {
		return fmt.Errorf("invalid DEFAULT_ITERATIONS: %d (must be between 1 and 99)", c.Iterations)
	}
	switch c.Sparsity {
	case 2, 4, 8:
	default:
		return fmt.Errorf("invalid DEFAULT_SPARSITY: %d (must be 2, 4 or 8)", c.Sparsity)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("invalid LINE_WIDTH: %d (must be positive)", c.LineWidth)
	}
	if _, err := meso.ParseBreakMode(c.BreakMode); err != nil {
		return fmt.Errorf("invalid BREAK_MODE: %w", err)
	}
	return nil
}

// ValidateForLibrary checks configuration needed for the oracle library.
func (c *Config) ValidateForLibrary() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.BooksDir == "" {
		return fmt.Errorf("BOOKS_DIR is required")
	}
	return nil
}

// Options converts the generation settings into generator options.
// Call ValidateGeneration first.
func (c *Config) Options() meso.Options {
	mode, _ := meso.ParseBreakMode(c.BreakMode)
	return meso.Options{
		Iterations:       c.Iterations,
		Sparsity:         c.Sparsity,
		StripPunctuation: c.StripPunctuation,
		DropNumbers:      c.DropNumbers,
		BreakMode:        mode,
		LineWidth:        c.LineWidth,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
