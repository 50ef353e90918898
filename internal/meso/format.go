package meso

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// SuccessMessage accompanies a completed mesostic.
	SuccessMessage = "Well glonce-a-day, it worked! Here you go:"

	// FailureMessage accompanies a partial mesostic.
	FailureMessage = "Could not complete the requested mesostic. The spine may not work " +
		"with that oracle, or it might work once but not be able to repeat. I got this far:"
)

// Highlighter decorates the uppercased spine letter of a line.
type Highlighter func(letter string) string

// Plain leaves the uppercased spine letter as is.
func Plain(letter string) string { return letter }

// HTMLBold wraps the spine letter in <b> tags.
func HTMLBold(letter string) string { return "<b>" + letter + "</b>" }

// Line is one formatted line of a mesostic.
type Line struct {
	// Text is the padded line with the spine letter highlighted.
	// Blank lines have empty Text.
	Text string
	// Blank marks a stanza or word break.
	Blank bool
	// Before and After are the unpadded parts around the spine letter.
	Before string
	After  string
	// Letter is the uppercased spine letter, before highlighting.
	Letter string
	// Offset is the number of characters preceding the spine letter.
	Offset int
	// Padding is the number of spaces added on the left to line up the spine.
	Padding int
}

// Format splits the poem into lines, uppercases and highlights the spine
// letter of each line and left-pads the lines so the spine reads straight
// down. It returns the status message and the lines.
func Format(poem Poem, spine []rune, highlight Highlighter) (string, []Line) {
	if highlight == nil {
		highlight = Plain
	}

	message := SuccessMessage
	if poem.Status == StatusFailed {
		message = FailureMessage
	}

	text := strings.TrimSpace(poem.Text)
	if text == "" || len(spine) == 0 {
		return message, nil
	}

	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	longest := 0
	s := 0

	for _, ln := range raw {
		if strings.TrimSpace(ln) == "" {
			lines = append(lines, Line{Blank: true})
			// A blank line consumes a blank marker; random stanza breaks
			// have no marker in the spine.
			if spine[s] == Blank {
				s = (s + 1) % len(spine)
			}
			continue
		}

		before, letter, after, ok := splitAtRune(ln, spine[s])
		if !ok {
			lines = append(lines, Line{Before: ln})
			continue
		}
		offset := utf8.RuneCountInString(before)
		longest = max(longest, offset)
		lines = append(lines, Line{
			Before: before,
			Letter: string(unicode.ToUpper(letter)),
			After:  after,
			Offset: offset,
		})
		s = (s + 1) % len(spine)
	}

	for i := range lines {
		ln := &lines[i]
		if ln.Blank {
			continue
		}
		if ln.Letter == "" {
			ln.Text = ln.Before
			continue
		}
		ln.Padding = longest - ln.Offset
		ln.Text = strings.TrimRight(
			strings.Repeat(" ", ln.Padding)+ln.Before+highlight(ln.Letter)+ln.After, " ")
	}

	return message, lines
}

// splitAtRune splits s around the first occurrence of r.
func splitAtRune(s string, r rune) (before string, letter rune, after string, ok bool) {
	i := strings.IndexRune(s, r)
	if i < 0 {
		return "", 0, "", false
	}
	return s[:i], r, s[i+utf8.RuneLen(r):], true
}
