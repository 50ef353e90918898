package app

import (
	"context"

	"github.com/abdulachik/mesostic/internal/config"
	"github.com/abdulachik/mesostic/internal/db"
	"github.com/abdulachik/mesostic/internal/library"
	"github.com/abdulachik/mesostic/internal/meso"
)

// App is the main application container holding all dependencies.
type App struct {
	Config  *config.Config
	Store   *db.Store
	Library *library.Library
}

// New opens the oracle library database, migrates it and wires the library.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	lib := library.New(library.Config{
		Store:    store,
		BooksDir: cfg.BooksDir,
		Normalize: meso.OracleOptions{
			StripPunctuation: cfg.StripPunctuation,
			DropNumbers:      cfg.DropNumbers,
		},
	})

	return &App{
		Config:  cfg,
		Store:   store,
		Library: lib,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
