package meso

import (
	"strings"
	"unicode/utf8"
)

// DefaultLineWidth is the character budget shared by a spine word and the
// wing text on one side of it.
const DefaultLineWidth = 45

// Rand is the random source used for wing word inclusion and stanza
// breaks. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// FillWing builds the wing text found between start and end on the oracle.
//
// Each candidate is kept only if it contains neither forbidden letter, it
// fits in budget together with a separating space, and rnd.IntN(sparsity)
// draws zero. Scanning stops at end or once the budget is used up. The
// returned cursor points past the last candidate considered, kept or not.
//
// end may sit numerically before start after a wraparound; the scan then
// runs through the end of the oracle and continues from index zero.
func FillWing(oracle []string, start, end int, forbidA, forbidB rune, budget, sparsity int, rnd Rand) (string, int) {
	n := len(oracle)
	if n == 0 {
		return "", start
	}
	if sparsity < 1 {
		sparsity = 1
	}

	pos := wrap(start, n)
	end = wrap(end, n)

	// Effective position: shift the wrapped side so a plain < comparison
	// recognises the boundary has not been reached yet.
	eff := pos
	if pos > end {
		eff -= n
	}

	var words []string
	used := 0
	for eff < end && used < budget {
		word := oracle[pos]
		size := utf8.RuneCountInString(word)
		if !strings.ContainsRune(word, forbidA) &&
			!strings.ContainsRune(word, forbidB) &&
			used+size+1 <= budget &&
			rnd.IntN(sparsity) == 0 {
			words = append(words, word)
			used += size + 1
		}
		eff++
		pos = (pos + 1) % n
	}

	return strings.Join(words, " "), pos
}
