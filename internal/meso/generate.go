package meso

import "math/rand/v2"

const (
	// DefaultIterations is the number of times the spine is spelled out.
	DefaultIterations = 1

	// DefaultSparsity gives each eligible wing word a 1 in 2 chance.
	DefaultSparsity = 2
)

// Options configures a generation run. Zero values select the defaults.
type Options struct {
	// Iterations is how many times the spine is repeated.
	Iterations int
	// Sparsity is the inverse probability of keeping an eligible wing word.
	// Higher values give thinner wings.
	Sparsity int
	// StripPunctuation trims punctuation from oracle words.
	StripPunctuation bool
	// DropNumbers removes all-digit oracle words.
	DropNumbers bool
	// BreakMode decides where blank lines go.
	BreakMode BreakMode
	// LineWidth bounds each side of a line in characters.
	LineWidth int
	// Rand drives wing inclusion and stanza breaks. Inject a seeded source
	// for reproducible poems.
	Rand Rand
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Sparsity <= 0 {
		o.Sparsity = DefaultSparsity
	}
	if o.BreakMode == "" {
		o.BreakMode = BreakRandom
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.Rand == nil {
		o.Rand = globalRand{}
	}
	return o
}

// globalRand draws from the process-wide math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Result is the outcome of Generate.
type Result struct {
	Status  Status
	Message string
	Lines   []Line
	// Spine is the normalized spine, including blank markers.
	Spine []rune
	// OracleWords is the number of normalized oracle words.
	OracleWords int
	// Poem is the unformatted poem text.
	Poem string
}

// Succeeded reports whether every spine letter found a word.
func (r *Result) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// Generate normalizes the inputs, assembles the poem and formats it.
//
// Only input validation fails with an error (ErrEmptyOracle,
// ErrEmptySpine). Running out of spine words is reported through a
// StatusFailed result holding the lines built so far.
func Generate(oracleText, seedText string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	oracle, err := NormalizeOracle(oracleText, OracleOptions{
		StripPunctuation: opts.StripPunctuation,
		DropNumbers:      opts.DropNumbers,
	})
	if err != nil {
		return nil, err
	}

	spine, err := NormalizeSpine(seedText, opts.BreakMode)
	if err != nil {
		return nil, err
	}

	return GenerateWords(oracle, spine, opts), nil
}

// GenerateWords runs generation over an already normalized oracle and
// spine. Both must be non-empty.
func GenerateWords(oracle []string, spine []rune, opts Options) *Result {
	opts = opts.withDefaults()

	poem := Assemble(oracle, spine, opts)
	message, lines := Format(poem, spine, Plain)

	return &Result{
		Status:      poem.Status,
		Message:     message,
		Lines:       lines,
		Spine:       spine,
		OracleWords: len(oracle),
		Poem:        poem.Text,
	}
}
