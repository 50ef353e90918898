package meso

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Text
	}
	return out
}

func TestGenerate_Scenarios(t *testing.T) {
	t.Run("single spine letter", func(t *testing.T) {
		res, err := Generate("dog cat", "c", Options{Rand: neverRand})
		require.NoError(t, err)

		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Equal(t, SuccessMessage, res.Message)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, "Cat", res.Lines[0].Text)
		assert.Equal(t, 0, res.Lines[0].Offset)
		assert.Equal(t, 0, res.Lines[0].Padding)
	})

	t.Run("no word carries the first letter", func(t *testing.T) {
		res, err := Generate("apple", "xy", Options{Rand: neverRand})
		require.NoError(t, err)

		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, FailureMessage, res.Message)
		assert.Empty(t, res.Lines)
	})

	t.Run("each letter in its own word", func(t *testing.T) {
		res, err := Generate("bat rat cat", "brc", Options{Rand: neverRand, Sparsity: 8})
		require.NoError(t, err)

		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Equal(t, []string{"Bat", "Rat", "Cat"}, texts(res.Lines))
		for _, ln := range res.Lines {
			assert.Equal(t, 0, ln.Offset)
			assert.Equal(t, 0, ln.Padding)
		}
	})
}

func TestGenerate_Wings(t *testing.T) {
	t.Run("left and wrapped right wing", func(t *testing.T) {
		res, err := Generate("we saw a cat run home", "c", Options{Rand: wingsOnlyRand})
		require.NoError(t, err)

		require.Len(t, res.Lines, 1)
		assert.Equal(t, "we saw a Cat run home we saw a", res.Lines[0].Text)
		assert.Equal(t, 9, res.Lines[0].Offset)
	})

	t.Run("wings avoid neighbor letters", func(t *testing.T) {
		res, err := Generate("oak elm cat fig ash dog yew", "cd", Options{Rand: wingsOnlyRand})
		require.NoError(t, err)

		require.Len(t, res.Lines, 2)
		// The right wing of 'c' stops at the next spine word.
		assert.Equal(t, "oak elm Cat fig ash", res.Lines[0].Text)
		assert.Equal(t, "        Dog yew oak elm", res.Lines[1].Text)
	})

	t.Run("right wing stops before the last spine word", func(t *testing.T) {
		// The last line has no next letter, so "ba" can carry its 'b'. The
		// first line's right wing must not swallow it.
		res, err := Generate("ca ba zz b", "ab", Options{Rand: wingsOnlyRand})
		require.NoError(t, err)

		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Equal(t, []string{"cA", " Ba zz"}, texts(res.Lines))

		word, _ := spineWord(res.Lines[1])
		assert.Equal(t, "ba", word)
	})

	t.Run("line width bounds each side", func(t *testing.T) {
		res, err := Generate("alpha beta gamma cat delta", "c", Options{Rand: wingsOnlyRand, LineWidth: 11})
		require.NoError(t, err)

		require.Len(t, res.Lines, 1)
		assert.Equal(t, "alpha beta Cat delta", res.Lines[0].Before+res.Lines[0].Letter+res.Lines[0].After)
	})
}

func TestGenerate_BreakModes(t *testing.T) {
	t.Run("word mode turns spaces into blank lines", func(t *testing.T) {
		res, err := Generate("cat dog", "c d", Options{Rand: neverRand, BreakMode: BreakWord})
		require.NoError(t, err)

		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Equal(t, []string{"Cat", "", "Dog"}, texts(res.Lines))
		assert.True(t, res.Lines[1].Blank)
		assert.Equal(t, "c d ", string(res.Spine))
	})

	t.Run("word mode repeats the blank between iterations", func(t *testing.T) {
		res, err := Generate("cat dog", "c d", Options{Rand: neverRand, BreakMode: BreakWord, Iterations: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{"Cat", "", "Dog", "", "Cat", "", "Dog"}, texts(res.Lines))
	})

	t.Run("random mode stanza breaks", func(t *testing.T) {
		res, err := Generate("cat dog", "cd", Options{Rand: alwaysRand})
		require.NoError(t, err)

		assert.Equal(t, []string{"Cat", "", "Dog"}, texts(res.Lines))
	})

	t.Run("word mode never draws stanza breaks", func(t *testing.T) {
		var draws []int
		rnd := randFunc(func(n int) int {
			draws = append(draws, n)
			return n - 1
		})
		_, err := Generate("cat dog emu", "c d", Options{Rand: rnd, BreakMode: BreakWord, Sparsity: 4})
		require.NoError(t, err)
		assert.NotContains(t, draws, stanzaOdds)
	})
}

func TestGenerate_PartialFailure(t *testing.T) {
	t.Run("later letter fails", func(t *testing.T) {
		res, err := Generate("cat dog", "cx", Options{Rand: neverRand})
		require.NoError(t, err)

		assert.Equal(t, StatusFailed, res.Status)
		assert.False(t, res.Succeeded())
		assert.Equal(t, []string{"Cat"}, texts(res.Lines))
	})

	t.Run("works once but cannot repeat", func(t *testing.T) {
		res, err := Generate("ba b", "ab", Options{Rand: neverRand, Iterations: 2})
		require.NoError(t, err)

		assert.Equal(t, StatusFailed, res.Status)
		assert.Equal(t, []string{"bA", " B"}, texts(res.Lines))
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("empty oracle", func(t *testing.T) {
		res, err := Generate("  ", "cage", Options{})
		assert.ErrorIs(t, err, ErrEmptyOracle)
		assert.Nil(t, res)
	})

	t.Run("empty spine", func(t *testing.T) {
		res, err := Generate("cold that gun the", "?!", Options{})
		assert.ErrorIs(t, err, ErrEmptySpine)
		assert.Nil(t, res)
	})
}

const cageOracle = `The cold night that the gun fired at the old house,
where cold rain fell, and the gun that they found was cold. 1 2 3`

// expectedLetters lists the spine context of every non-blank line in order.
func expectedLetters(spine []rune, iterations int) []Letters {
	n := len(spine)
	var out []Letters
	for iter := 0; iter < iterations; iter++ {
		for j, r := range spine {
			if r == Blank {
				continue
			}
			l := Letters{Current: r, Prev: spine[(j-1+n)%n], Next: spine[(j+1)%n]}
			if iter == 0 && j == 0 {
				l.Prev = Blank
			}
			if iter == iterations-1 && j == n-1 {
				l.Next = Blank
			}
			out = append(out, l)
		}
	}
	return out
}

// spineWord recovers the word that carries the spine letter of ln.
func spineWord(ln Line) (string, int) {
	head := ln.Before[strings.LastIndex(ln.Before, " ")+1:]
	tail := ln.After
	if i := strings.Index(tail, " "); i >= 0 {
		tail = tail[:i]
	}
	return head + strings.ToLower(ln.Letter) + tail, utf8.RuneCountInString(head)
}

func TestGenerate_Properties(t *testing.T) {
	const iterations = 3

	for _, mode := range []BreakMode{BreakRandom, BreakWord} {
		t.Run(string(mode), func(t *testing.T) {
			opts := Options{
				Iterations:       iterations,
				Sparsity:         2,
				StripPunctuation: true,
				DropNumbers:      true,
				BreakMode:        mode,
				Rand:             rand.New(rand.NewPCG(7, 11)),
			}

			res, err := Generate(cageOracle, "Ca ge", opts)
			require.NoError(t, err)
			require.Equal(t, StatusSucceeded, res.Status)

			want := expectedLetters(res.Spine, iterations)

			var spineLines []Line
			longest := 0
			for _, ln := range res.Lines {
				if ln.Blank {
					assert.Empty(t, ln.Text)
					continue
				}
				spineLines = append(spineLines, ln)
				longest = max(longest, ln.Offset)
			}
			require.Len(t, spineLines, len(want))

			for i, ln := range spineLines {
				l := want[i]
				assert.Equal(t, strings.ToUpper(string(l.Current)), ln.Letter, "line %d", i)

				word, offset := spineWord(ln)
				idx, ok := Eligible(word, l, len(res.Spine))
				assert.True(t, ok, "line %d: %q cannot carry %q", i, word, l.Current)
				assert.Equal(t, offset, idx, "line %d", i)

				assert.Equal(t, longest-ln.Offset, ln.Padding, "line %d", i)
				assert.True(t, strings.HasPrefix(ln.Text, strings.Repeat(" ", ln.Padding)+ln.Before))

				assert.LessOrEqual(t, utf8.RuneCountInString(ln.Before), DefaultLineWidth)
				assert.LessOrEqual(t, utf8.RuneCountInString(ln.After), DefaultLineWidth)
			}
		})
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	run := func() *Result {
		res, err := Generate(cageOracle, "cage", Options{
			Iterations: 4,
			Rand:       rand.New(rand.NewPCG(42, 1)),
		})
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, run(), run())
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()

	assert.Equal(t, DefaultIterations, opts.Iterations)
	assert.Equal(t, DefaultSparsity, opts.Sparsity)
	assert.Equal(t, BreakRandom, opts.BreakMode)
	assert.Equal(t, DefaultLineWidth, opts.LineWidth)
	assert.NotNil(t, opts.Rand)

	kept := Options{Iterations: 3, Sparsity: 8, BreakMode: BreakWord, LineWidth: 20}.withDefaults()
	assert.Equal(t, 3, kept.Iterations)
	assert.Equal(t, 8, kept.Sparsity)
	assert.Equal(t, BreakWord, kept.BreakMode)
	assert.Equal(t, 20, kept.LineWidth)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(9).String())
}
