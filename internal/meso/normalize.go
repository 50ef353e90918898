// Package meso generates mesostic poems from an oracle text and a spine
// phrase.
//
// A mesostic is read twice: across, as lines of words drawn from the
// oracle, and down, as the spine letters that sit in the middle of each
// line. Generation walks the oracle as a circular word list, picking for
// each spine letter the next word that contains it exactly once, and fills
// the rest of the line with wing words taken from between the spine words.
package meso

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Punctuation lists the characters removed from the spine and, when
// requested, trimmed from the edges of oracle words.
const Punctuation = ".,;:?/|\\'\"-!%^&*()[]{}<>_=+~`@#$%¡¿«»–—‘’“”"

// Blank is the spine sentinel that marks a blank line. It doubles as the
// neighbor letter at the very start and very end of a poem.
const Blank = ' '

// BreakMode selects how stanza and line breaks are placed.
type BreakMode string

const (
	// BreakRandom drops spaces from the spine and inserts stanza breaks at
	// random after lines.
	BreakRandom BreakMode = "random"

	// BreakWord keeps the spaces of the seed as blank lines, so stanzas
	// follow the words of the seed.
	BreakWord BreakMode = "word"
)

// ParseBreakMode converts a user supplied string into a BreakMode.
func ParseBreakMode(s string) (BreakMode, error) {
	switch BreakMode(strings.ToLower(strings.TrimSpace(s))) {
	case BreakRandom, "":
		return BreakRandom, nil
	case BreakWord:
		return BreakWord, nil
	default:
		return "", fmt.Errorf("unknown break mode %q (must be 'random' or 'word')", s)
	}
}

// OracleOptions controls oracle normalization.
type OracleOptions struct {
	// StripPunctuation trims Punctuation from both edges of every word.
	StripPunctuation bool

	// DropNumbers removes words made only of digits, such as the section
	// numbers printed through some poems.
	DropNumbers bool
}

// NormalizeOracle lowercases raw text and splits it into oracle words.
// Order and duplicates are preserved.
func NormalizeOracle(raw string, opts OracleOptions) ([]string, error) {
	fields := strings.Fields(norm.NFC.String(strings.ToLower(raw)))

	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if opts.StripPunctuation {
			w = strings.Trim(w, Punctuation)
		}
		if w == "" {
			continue
		}
		if opts.DropNumbers && isDigits(w) {
			continue
		}
		words = append(words, w)
	}

	if len(words) == 0 {
		return nil, ErrEmptyOracle
	}
	return words, nil
}

// NormalizeSpine turns a seed phrase into spine letters.
//
// Punctuation is removed everywhere. In BreakRandom mode all spaces are
// removed too; in BreakWord mode interior spaces stay as blank markers and
// one trailing Blank is appended.
func NormalizeSpine(raw string, mode BreakMode) ([]rune, error) {
	cleaned := norm.NFC.String(strings.TrimSpace(strings.ToLower(raw)))

	var spine []rune
	for _, r := range cleaned {
		if strings.ContainsRune(Punctuation, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if mode == BreakRandom {
				continue
			}
			r = Blank
		}
		spine = append(spine, r)
	}

	// Punctuation removal can expose spaces at either end.
	spine = []rune(strings.Trim(string(spine), string(Blank)))
	if len(spine) == 0 {
		return nil, ErrEmptySpine
	}

	if mode == BreakWord {
		spine = append(spine, Blank)
	}
	return spine, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
