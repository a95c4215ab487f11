package syllable

// Source describes where a word's syllable count came from.
type Source string

const (
	SourceLexicon  Source = "lexicon"
	SourceCompound Source = "compound"
	SourceEstimate Source = "estimate"
)

// Trace records how a single top-level resolution went. Each call gets its
// own Trace; batch callers sum them after the fact.
type Trace struct {
	// Calls counts resolve invocations, the top-level one included.
	Calls int
	// FallbackCalls counts how often the estimator was consulted.
	FallbackCalls int
	// Unknown is set when the estimator was consulted on the original word.
	Unknown bool
	// Split is set when some prefix of a candidate matched the lexicon.
	Split bool
}

// Source classifies the resolution.
func (t Trace) Source() Source {
	switch {
	case t.FallbackCalls > 0:
		return SourceEstimate
	case t.Split || t.Calls > 1:
		return SourceCompound
	default:
		return SourceLexicon
	}
}

// Partial reports whether the estimator was used for a fragment only.
func (t Trace) Partial() bool {
	return t.FallbackCalls > 0 && !t.Unknown
}
