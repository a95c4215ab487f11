// Package lexicon holds the immutable word → syllable-count mapping consulted
// by the syllable resolver. A Lexicon is built once and never mutated, so a
// single instance can be shared by any number of goroutines without locking.
package lexicon

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

// Lexicon maps normalized words to positive syllable counts.
type Lexicon struct {
	counts map[string]int
}

// New builds a Lexicon from entries. Keys are folded with textnorm.FoldKey;
// entries whose key folds to the empty string are dropped. When two keys fold
// to the same word, the lexicographically larger original key wins so the
// result does not depend on map iteration order.
// Any non-positive count rejects the whole input with domain.ErrValidation.
func New(entries map[string]int) (*Lexicon, error) {
	keys := make([]string, 0, len(entries))
	for word, n := range entries {
		if n <= 0 {
			return nil, fmt.Errorf("lexicon: %q: %w", word,
				domain.NewValidationError("syllables", fmt.Sprintf("must be positive (got %d)", n)))
		}
		keys = append(keys, word)
	}
	slices.Sort(keys)

	counts := make(map[string]int, len(entries))
	for _, word := range keys {
		key := textnorm.FoldKey(word)
		if key == "" {
			continue
		}
		counts[key] = entries[word]
	}

	return &Lexicon{counts: counts}, nil
}

// Lookup returns the syllable count for an exact, already normalized word.
func (l *Lexicon) Lookup(word string) (int, bool) {
	n, ok := l.counts[word]
	return n, ok
}

// Contains reports whether word is a direct hit.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.counts[word]
	return ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.counts)
}
