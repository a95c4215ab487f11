package syllable

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

// WordCount is the resolution of one token.
type WordCount struct {
	Word      string
	Syllables int
	Source    Source
}

// Analysis is a per-token breakdown of a text.
type Analysis struct {
	Normalized string
	Words      []WordCount
	Total      int
}

// CountText normalizes text, splits it on whitespace and sums the syllable
// counts of the tokens. Empty text yields 0. Invalid UTF-8 is reported before
// any token is resolved.
func (c *Counter) CountText(text string) (int, error) {
	normalized, err := textnorm.Normalize(text)
	if err != nil {
		return 0, fmt.Errorf("count text: %w", err)
	}

	total := 0
	for _, token := range textnorm.Tokenize(normalized) {
		total += c.CountWord(token)
	}
	return total, nil
}

// Analyze is CountText with a per-token breakdown. It bypasses the memo.
func (c *Counter) Analyze(text string) (Analysis, error) {
	normalized, err := textnorm.Normalize(text)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze text: %w", err)
	}

	tokens := textnorm.Tokenize(normalized)
	a := Analysis{
		Normalized: normalized,
		Words:      make([]WordCount, 0, len(tokens)),
	}
	for _, token := range tokens {
		n, tr := c.CountWordTrace(token)
		a.Words = append(a.Words, WordCount{Word: token, Syllables: n, Source: tr.Source()})
		a.Total += n
	}
	return a, nil
}

// CountTexts counts many texts concurrently and returns the totals in input
// order. The first failing text aborts the batch; so does ctx.
func (c *Counter) CountTexts(ctx context.Context, texts []string) ([]int, error) {
	totals := make([]int, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := c.CountText(text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			totals[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
