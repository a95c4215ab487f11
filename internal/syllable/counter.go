// Package syllable counts syllables in Dutch words and texts. Words are looked
// up in an immutable lexicon, split into known compound parts when possible,
// and handed to a heuristic estimator as a last resort.
//
// A Counter is safe for concurrent use.
package syllable

import (
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/lettergreep/internal/lexicon"
)

// Estimator is the fallback syllable counter for words the lexicon cannot
// resolve. Implementations must be side-effect free and safe for concurrent use.
type Estimator interface {
	Estimate(word string) int
}

// EstimatorFunc adapts a plain function to Estimator.
type EstimatorFunc func(word string) int

// Estimate calls f(word).
func (f EstimatorFunc) Estimate(word string) int { return f(word) }

// Counter resolves words and texts against a shared lexicon.
type Counter struct {
	lex     *lexicon.Lexicon
	est     Estimator
	memo    *lru.Cache[string, int]
	workers int
}

// Option configures a Counter.
type Option func(*Counter)

// WithCache memoizes CountWord results for up to size distinct words.
// A size of zero or less disables the memo.
func WithCache(size int) Option {
	return func(c *Counter) {
		if size <= 0 {
			c.memo = nil
			return
		}
		memo, err := lru.New[string, int](size)
		if err == nil {
			c.memo = memo
		}
	}
}

// WithWorkers bounds the number of goroutines used by CountTexts.
// Values below 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Counter) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// NewCounter creates a Counter. lex and est must not be nil.
func NewCounter(lex *lexicon.Lexicon, est Estimator, opts ...Option) *Counter {
	c := &Counter{
		lex:     lex,
		est:     est,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lexicon returns the lexicon the counter resolves against.
func (c *Counter) Lexicon() *lexicon.Lexicon {
	return c.lex
}

// CountWord returns the syllable count of a single normalized token.
func (c *Counter) CountWord(word string) int {
	if c.memo == nil {
		return c.Resolve(word, word)
	}
	if n, ok := c.memo.Get(word); ok {
		return n
	}
	n := c.Resolve(word, word)
	c.memo.Add(word, n)
	return n
}

// CountWordTrace resolves word like CountWord but bypasses the memo and
// reports how the count was obtained.
func (c *Counter) CountWordTrace(word string) (int, Trace) {
	var tr Trace
	n := c.resolve(word, word, &tr)
	return n, tr
}
