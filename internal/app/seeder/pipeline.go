package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/lexicon/celex"
)

const (
	PhaseCELEX  = "celex"
	PhaseVerify = "verify"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseCELEX, PhaseVerify}

const defaultBatchSize = 1000

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int // rows inserted or changed
	Deleted  int
	Skipped  int // entries parsed but not written
	Rows     int // rows present for the source after the phase
	Total    int // rows present across all sources
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the seeding phases.
type Pipeline struct {
	log     *slog.Logger
	repo    LexiconBulkRepo
	tx      TxRunner
	cfg     Config
	now     func() time.Time
	results map[string]PhaseResult

	// parsed is the number of unique CELEX words seen by the celex phase,
	// or -1 if the phase did not run.
	parsed int
	// written holds the entries the celex phase wrote, for spot checks.
	written []domain.LexiconEntry
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo LexiconBulkRepo, tx TxRunner, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		tx:      tx,
		cfg:     cfg,
		now:     time.Now,
		results: make(map[string]PhaseResult),
		parsed:  -1,
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases
// run, still in canonical order. Unknown phase names are rejected before
// anything runs. A failing phase is recorded and does not stop later phases.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		for _, ph := range phases {
			if !slices.Contains(allPhases, ph) {
				return fmt.Errorf("unknown phase %q", ph)
			}
		}
		toRun = nil
		for _, ph := range allPhases {
			if slices.Contains(phases, ph) {
				toRun = append(toRun, ph)
			}
		}
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseCELEX:
			result = p.runCELEX(ctx)
		case PhaseVerify:
			result = p.runVerify(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("deleted", result.Deleted),
				slog.Int("skipped", result.Skipped),
				slog.Int("rows", result.Rows),
				slog.Int("total", result.Total),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// runCELEX parses the CELEX file and upserts its entries in batches.
func (p *Pipeline) runCELEX(ctx context.Context) PhaseResult {
	if p.cfg.CELEXPath == "" {
		return PhaseResult{Skipped: 1, Err: fmt.Errorf("celex path not configured")}
	}

	parsed, err := celex.Parse(p.cfg.CELEXPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("parse celex: %w", err)}
	}
	p.parsed = parsed.Stats.UniqueWords
	p.log.Info("celex parsed",
		slog.Int("total_lines", parsed.Stats.TotalLines),
		slog.Int("skipped_lines", parsed.Stats.SkippedLines),
		slog.Int("unique_words", parsed.Stats.UniqueWords),
	)

	if p.cfg.DryRun {
		return PhaseResult{Skipped: parsed.Stats.UniqueWords}
	}

	entries := parsed.ToDomainEntries(p.now())

	var result PhaseResult
	err = p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if p.cfg.Replace {
			deleted, err := p.repo.DeleteSource(ctx, domain.SourceCELEX)
			if err != nil {
				return fmt.Errorf("delete source: %w", err)
			}
			result.Deleted = deleted
		}

		inserted, err := batchProcess(entries, p.cfg.BatchSize, func(batch []domain.LexiconEntry) (int, error) {
			return p.repo.BulkUpsert(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("upsert entries: %w", err)
		}
		result.Inserted = inserted
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}

	p.written = entries
	result.Skipped = len(entries) - result.Inserted
	return result
}

// runVerify counts the CELEX rows in the store. When the celex phase wrote
// in the same run, fewer rows than parsed words is an error, and a few of the
// written entries are read back and compared.
func (p *Pipeline) runVerify(ctx context.Context) PhaseResult {
	rows, err := p.repo.CountBySource(ctx, domain.SourceCELEX)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("count rows: %w", err)}
	}
	total, err := p.repo.Count(ctx)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("count all rows: %w", err)}
	}

	result := PhaseResult{Rows: rows, Total: total}
	if p.parsed < 0 || p.cfg.DryRun {
		return result
	}
	if celexRes, ok := p.results[PhaseCELEX]; ok && celexRes.Err != nil {
		return result
	}

	var problems []error
	if rows < p.parsed {
		result.Errors += p.parsed - rows
		problems = append(problems, fmt.Errorf("store holds %d %s rows, parsed %d", rows, domain.SourceCELEX, p.parsed))
	}

	for _, want := range spotChecks(p.written) {
		got, err := p.repo.Get(ctx, want.Word)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			result.Errors++
			problems = append(problems, fmt.Errorf("entry %q missing", want.Word))
		case err != nil:
			return PhaseResult{Rows: rows, Total: total, Err: fmt.Errorf("read back %q: %w", want.Word, err)}
		case got.Syllables != want.Syllables:
			result.Errors++
			problems = append(problems, fmt.Errorf("entry %q holds %d syllables, parsed %d", want.Word, got.Syllables, want.Syllables))
		}
	}

	result.Err = errors.Join(problems...)
	return result
}

// spotChecks picks the first, middle and last entry.
func spotChecks(entries []domain.LexiconEntry) []domain.LexiconEntry {
	if len(entries) <= 3 {
		return entries
	}
	return []domain.LexiconEntry{entries[0], entries[len(entries)/2], entries[len(entries)-1]}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
