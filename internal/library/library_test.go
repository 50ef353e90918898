package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdulachik/mesostic/internal/db"
	"github.com/abdulachik/mesostic/internal/ingest"
	"github.com/abdulachik/mesostic/internal/meso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var defaultNormalize = meso.OracleOptions{StripPunctuation: true, DropNumbers: true}

func newTestLibrary(t *testing.T, booksDir string) *Library {
	t.Helper()
	return New(Config{Store: db.NewTestStore(t), BooksDir: booksDir, Workers: 2, Normalize: defaultNormalize})
}

func TestLibrary_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("stores text and counts words", func(t *testing.T) {
		lib := newTestLibrary(t, "")

		res, err := lib.Import(ctx, "song", "books/song.txt", "I celebrate myself, and sing myself 1855")
		require.NoError(t, err)
		assert.Equal(t, "song", res.Name)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, 6, res.WordCount)
		assert.False(t, res.Duplicate)

		got, err := lib.Get(ctx, "song")
		require.NoError(t, err)
		assert.Equal(t, res.ID, got.ID)
		assert.Equal(t, "books/song.txt", got.SourcePath)
		assert.Equal(t, "I celebrate myself, and sing myself 1855", got.Text)
	})

	t.Run("same text is a duplicate", func(t *testing.T) {
		lib := newTestLibrary(t, "")

		first, err := lib.Import(ctx, "one", "", "all the world's a stage")
		require.NoError(t, err)

		second, err := lib.Import(ctx, "two", "", "all the world's a stage")
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "one", second.Name)

		stats, err := lib.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Oracles)
	})

	t.Run("name taken by different text", func(t *testing.T) {
		lib := newTestLibrary(t, "")

		_, err := lib.Import(ctx, "one", "", "first text")
		require.NoError(t, err)

		_, err = lib.Import(ctx, "one", "", "second text")
		assert.ErrorIs(t, err, ErrOracleExists)
	})

	t.Run("word count follows normalization", func(t *testing.T) {
		lib := New(Config{
			Store:     db.NewTestStore(t),
			Normalize: meso.OracleOptions{StripPunctuation: true},
		})
		text := "In 1855, ... he sang"

		res, err := lib.Import(ctx, "keep-numbers", "", text)
		require.NoError(t, err)

		tokens, err := meso.NormalizeOracle(text, meso.OracleOptions{StripPunctuation: true})
		require.NoError(t, err)
		assert.Equal(t, len(tokens), res.WordCount)
		assert.Equal(t, 4, res.WordCount)
	})

	t.Run("text without words", func(t *testing.T) {
		lib := newTestLibrary(t, "")

		_, err := lib.Import(ctx, "noise", "", "... 42 !!")
		assert.ErrorIs(t, err, meso.ErrEmptyOracle)
	})
}

func TestLibrary_ImportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	paths := []string{
		writeBook(t, dir, "grass.txt", "Come, said my soul, such verses for my body let us write"),
		writeBook(t, dir, "wake.txt", "riverrun, past Eve and Adam's"),
		writeBook(t, dir, "stage.md", "All the world's a stage"),
	}

	lib := newTestLibrary(t, dir)
	results, err := lib.ImportFiles(ctx, paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "grass", results[0].Name)
	assert.Equal(t, "wake", results[1].Name)
	assert.Equal(t, "stage", results[2].Name)
	assert.Equal(t, 5, results[2].WordCount)

	t.Run("parse failure stores nothing", func(t *testing.T) {
		lib := newTestLibrary(t, dir)
		bad := writeBook(t, dir, "bad.epub", "nope")

		_, err := lib.ImportFiles(ctx, []string{paths[0], bad})
		assert.ErrorIs(t, err, ingest.ErrUnsupportedFile)

		stats, err := lib.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Oracles)
	})
}

func TestLibrary_ImportDir(t *testing.T) {
	ctx := context.Background()

	t.Run("imports supported files only", func(t *testing.T) {
		dir := t.TempDir()
		writeBook(t, dir, "b.txt", "beta words here")
		writeBook(t, dir, "a.txt", "alpha words")
		writeBook(t, dir, "cover.jpg", "binary")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

		lib := newTestLibrary(t, dir)
		results, err := lib.ImportDir(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a", results[0].Name)
		assert.Equal(t, "b", results[1].Name)

		stats, err := lib.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Oracles)
		assert.Equal(t, int64(5), stats.Words)
	})

	t.Run("empty directory", func(t *testing.T) {
		lib := newTestLibrary(t, t.TempDir())
		results, err := lib.ImportDir(ctx)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("missing directory", func(t *testing.T) {
		lib := newTestLibrary(t, filepath.Join(t.TempDir(), "missing"))
		_, err := lib.ImportDir(ctx)
		assert.Error(t, err)
	})
}

func TestLibrary_ListGetRemove(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, "")

	_, err := lib.Import(ctx, "zebra", "", "stripes and more stripes")
	require.NoError(t, err)
	_, err = lib.Import(ctx, "aardvark", "", "ants for dinner")
	require.NoError(t, err)

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "aardvark", list[0].Name)
	assert.Empty(t, list[0].Text)

	t.Run("get missing", func(t *testing.T) {
		_, err := lib.Get(ctx, "unicorn")
		assert.ErrorIs(t, err, ErrOracleNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, lib.Remove(ctx, "zebra"))

		_, err := lib.Get(ctx, "zebra")
		assert.ErrorIs(t, err, ErrOracleNotFound)

		err = lib.Remove(ctx, "zebra")
		assert.ErrorIs(t, err, ErrOracleNotFound)
	})
}

func writeBook(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}
