package accuracy

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lettergreep/internal/syllable"
	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

// Coverage is the share of unique words the lexicon knows directly. Since
// those words carry their source count, the share equals their accuracy.
type Coverage struct {
	Total int
	Hits  int
}

// Percent returns Hits as a percentage of Total, or 0 for no words.
func (c Coverage) Percent() float64 { return percent(c.Hits, c.Total) }

// CompoundReport splits unique words by how the counter resolved them.
type CompoundReport struct {
	Total int
	// Resolved words never reached the estimator.
	Resolved int
	// Partial words used the estimator for a fragment only.
	Partial int
	// Unknown words went to the estimator whole.
	Unknown int
}

// ResolvedPercent is the share resolved without the estimator.
func (r CompoundReport) ResolvedPercent() float64 { return percent(r.Resolved, r.Total) }

// PartialPercent is the share that used the estimator for a fragment.
func (r CompoundReport) PartialPercent() float64 { return percent(r.Partial, r.Total) }

// UnknownPercent is the share handed to the estimator whole.
func (r CompoundReport) UnknownPercent() float64 { return percent(r.Unknown, r.Total) }

func (r CompoundReport) add(o CompoundReport) CompoundReport {
	return CompoundReport{
		Total:    r.Total + o.Total,
		Resolved: r.Resolved + o.Resolved,
		Partial:  r.Partial + o.Partial,
		Unknown:  r.Unknown + o.Unknown,
	}
}

// Miss is a gold word the counter got wrong.
type Miss struct {
	Word     string
	Expected int
	Got      int
}

// GoldReport compares the counter and the bare estimator against gold counts.
type GoldReport struct {
	Total            int
	CounterCorrect   int
	EstimatorCorrect int
	Misses           []Miss
}

// CounterPercent is the counter's exact-match rate.
func (r GoldReport) CounterPercent() float64 { return percent(r.CounterCorrect, r.Total) }

// EstimatorPercent is the estimator's exact-match rate.
func (r GoldReport) EstimatorPercent() float64 { return percent(r.EstimatorCorrect, r.Total) }

// Harness runs accuracy measurements against one counter.
type Harness struct {
	log     *slog.Logger
	counter *syllable.Counter
	est     syllable.Estimator
	workers int
}

// NewHarness creates a Harness. est is the estimator the counter falls back
// to; it is measured on its own for comparison. workers < 1 means GOMAXPROCS.
func NewHarness(log *slog.Logger, counter *syllable.Counter, est syllable.Estimator, workers int) *Harness {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Harness{log: log, counter: counter, est: est, workers: workers}
}

// LexiconCoverage counts the words that are direct lexicon hits.
func (h *Harness) LexiconCoverage(words []string) Coverage {
	lex := h.counter.Lexicon()
	c := Coverage{Total: len(words)}
	for _, w := range words {
		if lex.Contains(w) {
			c.Hits++
		}
	}

	h.log.Info("lexicon coverage",
		slog.Int("words", c.Total),
		slog.Int("hits", c.Hits),
		slog.Float64("percent", c.Percent()),
	)
	return c
}

// CompoundCoverage resolves every word with tracing. Each worker keeps its
// own tally; tallies are summed once all workers are done.
func (h *Harness) CompoundCoverage(ctx context.Context, words []string) (CompoundReport, error) {
	chunks := split(words, h.workers)
	tallies := make([]CompoundReport, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			var tally CompoundReport
			for _, w := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				_, tr := h.counter.CountWordTrace(w)
				tally.Total++
				switch {
				case tr.FallbackCalls == 0:
					tally.Resolved++
				case tr.Unknown:
					tally.Unknown++
				default:
					tally.Partial++
				}
			}
			tallies[i] = tally
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CompoundReport{}, fmt.Errorf("compound coverage: %w", err)
	}

	var report CompoundReport
	for _, t := range tallies {
		report = report.add(t)
	}

	h.log.Info("compound coverage",
		slog.Int("words", report.Total),
		slog.Float64("resolved_percent", report.ResolvedPercent()),
		slog.Float64("partial_percent", report.PartialPercent()),
		slog.Float64("unknown_percent", report.UnknownPercent()),
	)
	return report, nil
}

// GoldAccuracy counts exact matches for the counter and for the estimator
// alone. Gold words are normalized the same way text tokens are.
func (h *Harness) GoldAccuracy(ctx context.Context, gold []GoldEntry) (GoldReport, error) {
	report := GoldReport{Total: len(gold)}

	for _, g := range gold {
		if err := ctx.Err(); err != nil {
			return GoldReport{}, fmt.Errorf("gold accuracy: %w", err)
		}

		normalized, err := textnorm.Normalize(g.Word)
		if err != nil {
			return GoldReport{}, fmt.Errorf("gold accuracy: word %q: %w", g.Word, err)
		}

		got, err := h.counter.CountText(normalized)
		if err != nil {
			return GoldReport{}, fmt.Errorf("gold accuracy: word %q: %w", g.Word, err)
		}
		if got == g.Syllables {
			report.CounterCorrect++
		} else {
			report.Misses = append(report.Misses, Miss{Word: normalized, Expected: g.Syllables, Got: got})
		}

		estimated := 0
		for _, token := range textnorm.Tokenize(normalized) {
			estimated += h.est.Estimate(token)
		}
		if estimated == g.Syllables {
			report.EstimatorCorrect++
		}
	}

	h.log.Info("gold accuracy",
		slog.Int("words", report.Total),
		slog.Float64("counter_percent", report.CounterPercent()),
		slog.Float64("estimator_percent", report.EstimatorPercent()),
	)
	return report, nil
}

// split cuts words into at most n contiguous chunks of similar size.
func split(words []string, n int) [][]string {
	if len(words) == 0 {
		return nil
	}
	if n > len(words) {
		n = len(words)
	}
	size := (len(words) + n - 1) / n

	chunks := make([][]string, 0, n)
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		chunks = append(chunks, words[start:end])
	}
	return chunks
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
