package syllable

import "strings"

// connector is the linking letter Dutch inserts between compound parts.
const connector = 's'

// minPart is the shortest fragment a compound split may produce.
const minPart = 2

// pluralSuffixes mark a head whose final "s" may belong to the next part
// instead ("ketels|teen" → "ketel|steen"). Empirical; keep as is.
var pluralSuffixes = []string{"es", "els", "ens", "ers", "ems", "ies", "eaus"}

// Resolve returns the syllable count of candidate, where original is the
// word as first submitted. Checks run in order and the first match wins:
//  1. candidate is in the lexicon;
//  2. candidate splits into a known head plus a resolvable tail;
//  3. candidate starts with a connector "s" that was not in the original word;
//  4. the estimator's answer.
//
// Every recursive step passes a strictly shorter candidate, so the recursion
// depth is bounded by the length of original.
func (c *Counter) Resolve(candidate, original string) int {
	return c.resolve(candidate, original, nil)
}

func (c *Counter) resolve(candidate, original string, tr *Trace) int {
	if tr != nil {
		tr.Calls++
	}

	if n, ok := c.lex.Lookup(candidate); ok {
		return n
	}

	if n, ok := c.decompose(candidate, original, tr); ok {
		return n
	}

	if tr != nil {
		tr.FallbackCalls++
		if candidate == original {
			tr.Unknown = true
		}
	}
	return c.est.Estimate(candidate)
}

// decompose tries compound splitting and connector stripping. ok is false
// when neither applies; the caller then falls back to the estimator.
func (c *Counter) decompose(candidate, original string, tr *Trace) (int, bool) {
	rs := []rune(candidate)

	// Longest head first; both halves keep at least minPart runes.
	for i := len(rs) - minPart; i >= minPart; i-- {
		head, tail := string(rs[:i]), string(rs[i:])

		headCount, ok := c.lex.Lookup(head)
		if !ok {
			continue
		}
		if tr != nil {
			tr.Split = true
		}

		if tailCount, ok := c.lex.Lookup(tail); ok {
			return headCount + tailCount, true
		}

		if n, ok := c.refine(rs[:i], tail); ok {
			return n, true
		}

		if stemCount, ok := c.pluralStem(rs[:i]); ok {
			return stemCount + c.resolve(string(connector)+tail, original, tr), true
		}

		return headCount + c.resolve(tail, original, tr), true
	}

	if len(rs) > 0 && rs[0] == connector && candidate != original {
		return c.resolve(string(rs[1:]), original, tr), true
	}

	return 0, false
}

// refine moves the head/tail boundary left: head[:j] and head[j:]+tail must
// both be lexicon words. Longest first part wins.
func (c *Counter) refine(head []rune, tail string) (int, bool) {
	for j := len(head); j >= minPart; j-- {
		first := string(head[:j])
		second := string(head[j:]) + tail

		firstCount, ok := c.lex.Lookup(first)
		if !ok {
			continue
		}
		if secondCount, ok := c.lex.Lookup(second); ok {
			return firstCount + secondCount, true
		}
	}
	return 0, false
}

// pluralStem reports the count of head minus its final letter when head ends
// in a plural or inflection suffix and that stem is a lexicon word.
func (c *Counter) pluralStem(head []rune) (int, bool) {
	h := string(head)
	for _, suffix := range pluralSuffixes {
		if !strings.HasSuffix(h, suffix) {
			continue
		}
		return c.lex.Lookup(string(head[:len(head)-1]))
	}
	return 0, false
}
