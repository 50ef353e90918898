package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abdulachik/mesostic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "data", "mesostic.db"),
		BooksDir:     t.TempDir(),
	}

	a, err := New(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Same(t, cfg, a.Config)

	_, err = a.Library.Import(ctx, "song", "", "I sing the body electric")
	require.NoError(t, err)

	stats, err := a.Library.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Oracles)
}
