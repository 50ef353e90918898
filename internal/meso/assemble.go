package meso

import "strings"

// stanzaOdds is the 1-in-N chance of a stanza break after a line in
// BreakRandom mode. It is independent of the wing sparsity.
const stanzaOdds = 7

// Status is the state of a poem run.
type Status int

const (
	StatusRunning Status = iota
	StatusSucceeded
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Poem is the raw text of a run together with its terminal status.
// Lines are separated by '\n'; blank marker lines hold a single space.
type Poem struct {
	Text   string
	Status Status
}

// assembler carries the per-run state that the line builder threads
// through the double loop.
type assembler struct {
	oracle []string
	spine  []rune
	opts   Options

	cursor int
	out    strings.Builder
	status Status
}

// Assemble builds a poem by walking the spine opts.Iterations times.
//
// Generation stops at the first spine letter no oracle word can carry;
// the poem then has StatusFailed and keeps every line built before it.
func Assemble(oracle []string, spine []rune, opts Options) Poem {
	a := &assembler{
		oracle: oracle,
		spine:  spine,
		opts:   opts.withDefaults(),
		status: StatusRunning,
	}
	a.run()
	return Poem{Text: a.out.String(), Status: a.status}
}

func (a *assembler) run() {
	for iter := 0; iter < a.opts.Iterations; iter++ {
		for line := range a.spine {
			if err := a.line(iter, line); err != nil {
				a.status = StatusFailed
				return
			}
		}
	}
	a.status = StatusSucceeded
}

// letters resolves the neighbors for one line. Prev is Blank only at the
// very start of the poem and Next only at the very end.
func (a *assembler) letters(iter, line int) Letters {
	n := len(a.spine)
	l := Letters{
		Current: a.spine[line],
		Prev:    a.spine[wrap(line-1, n)],
		Next:    a.spine[(line+1)%n],
	}
	if iter == 0 && line == 0 {
		l.Prev = Blank
	}
	if iter == a.opts.Iterations-1 && line == n-1 {
		l.Next = Blank
	}
	return l
}

func (a *assembler) line(iter, line int) error {
	l := a.letters(iter, line)

	if l.Current == Blank {
		a.out.WriteByte(Blank)
		a.endLine()
		return nil
	}

	m, err := FindSpineWord(a.oracle, a.cursor, l, len(a.spine))
	if err != nil {
		return err
	}

	runes := []rune(m.Word)
	width := a.opts.LineWidth

	left, _ := FillWing(a.oracle, a.cursor, m.Pos, l.Current, l.Prev,
		width-m.Index, a.opts.Sparsity, a.opts.Rand)
	if left != "" {
		a.out.WriteString(left)
		a.out.WriteByte(' ')
	}

	a.out.WriteString(m.Word)

	end := a.lookahead(iter, line, m.Next)
	right, cursor := FillWing(a.oracle, m.Next, end, l.Current, l.Next,
		width-(len(runes)-m.Index-1), a.opts.Sparsity, a.opts.Rand)
	if right != "" {
		a.out.WriteByte(' ')
		a.out.WriteString(right)
	}

	a.endLine()
	a.cursor = cursor
	return nil
}

// lookahead finds where the next spine word would sit so the right wing
// stops before it. The next letter gets the same neighbors its own line
// will search with. If no word fits, the right wing gets an empty range.
func (a *assembler) lookahead(iter, line, from int) int {
	n := len(a.spine)
	for step := 1; step <= n; step++ {
		k := (line + step) % n
		if a.spine[k] == Blank {
			continue
		}
		l := a.letters(iter+(line+step)/n, k)
		m, err := FindSpineWord(a.oracle, from, l, n)
		if err != nil {
			return from
		}
		return m.Pos
	}
	return from
}

func (a *assembler) endLine() {
	a.out.WriteByte('\n')
	if a.opts.BreakMode == BreakRandom && a.opts.Rand.IntN(stanzaOdds) == 0 {
		a.out.WriteByte('\n')
	}
}
