package meso

// Letters is the spine context for one line: the letter the line carries
// and its neighbors in reading order.
type Letters struct {
	Current rune
	Prev    rune
	Next    rune
}

// Match is a resolved spine word.
type Match struct {
	// Word is the chosen oracle word.
	Word string
	// Pos is the oracle index of Word.
	Pos int
	// Index is the rune offset of the spine letter inside Word.
	Index int
	// Next is the cursor immediately after Word, wrapped to the oracle size.
	Next int
}

// Blank reports whether the match stands for a blank spine marker.
func (m Match) Blank() bool {
	return m.Word == string(Blank)
}

// FindSpineWord scans the oracle cyclically from cursor and returns the
// first word that can carry l.Current.
//
// A Blank current letter returns a synthetic blank match at cursor without
// advancing. If the scan comes back to its starting index without a
// match, ErrSpineWordExhausted is returned. The search holds no state, so
// the same inputs always give the same match.
//
// Complexity: O(|oracle|) word checks.
func FindSpineWord(oracle []string, cursor int, l Letters, spineLen int) (Match, error) {
	if l.Current == Blank {
		return Match{Word: string(Blank), Pos: cursor, Next: cursor}, nil
	}
	n := len(oracle)
	if n == 0 {
		return Match{}, ErrSpineWordExhausted
	}

	start := wrap(cursor, n)
	i := start
	for {
		if idx, ok := Eligible(oracle[i], l, spineLen); ok {
			return Match{
				Word:  oracle[i],
				Pos:   i,
				Index: idx,
				Next:  (i + 1) % n,
			}, nil
		}
		i = (i + 1) % n
		if i == start {
			return Match{}, ErrSpineWordExhausted
		}
	}
}

// Eligible reports whether word can carry l.Current, returning the rune
// offset of the letter when it can.
//
// The word must contain l.Current exactly once. For spines longer than one
// letter, l.Prev may not appear before that occurrence and l.Next may not
// appear after it.
func Eligible(word string, l Letters, spineLen int) (int, bool) {
	runes := []rune(word)

	idx := -1
	for i, r := range runes {
		if r != l.Current {
			continue
		}
		if idx != -1 {
			return 0, false
		}
		idx = i
	}
	if idx == -1 {
		return 0, false
	}

	if spineLen > 1 {
		if containsRune(runes[:idx], l.Prev) || containsRune(runes[idx+1:], l.Next) {
			return 0, false
		}
	}
	return idx, true
}

func containsRune(runes []rune, r rune) bool {
	for _, c := range runes {
		if c == r {
			return true
		}
	}
	return false
}

// wrap maps any integer onto [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
