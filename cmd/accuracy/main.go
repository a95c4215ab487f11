// Command accuracy measures how well the syllable counter covers a corpus.
//
// Usage:
//
//	accuracy [--texts texts.csv] [--gold gold.csv] [--workers N] [--misses N]
//
// --texts reads a CSV with a "text" column and reports lexicon and compound
// coverage over its unique words. --gold reads a "word;syllables" CSV and
// reports exact-match accuracy for the counter and the bare estimator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/heartmarshall/lettergreep/internal/accuracy"
	"github.com/heartmarshall/lettergreep/internal/app"
	"github.com/heartmarshall/lettergreep/internal/config"
	"github.com/heartmarshall/lettergreep/internal/estimator"
	"github.com/heartmarshall/lettergreep/internal/syllable"
)

func main() {
	textsFlag := flag.String("texts", "", "CSV file with a text column")
	goldFlag := flag.String("gold", "", "word;syllables CSV file with reference counts")
	workersFlag := flag.Int("workers", 0, "concurrent workers (default: GOMAXPROCS)")
	missesFlag := flag.Int("misses", 20, "number of gold misses to print")
	flag.Parse()

	if *textsFlag == "" && *goldFlag == "" {
		fmt.Fprintln(os.Stderr, "accuracy: at least one of --texts or --gold is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lex, err := app.OpenLexicon(ctx, cfg, logger)
	if err != nil {
		logger.Error("load lexicon", slog.String("error", err.Error()))
		os.Exit(1)
	}

	est := estimator.Dutch{}
	counter := syllable.NewCounter(lex, est, syllable.WithCache(cfg.Engine.CacheSize))
	h := accuracy.NewHarness(logger, counter, est, *workersFlag)

	if *textsFlag != "" {
		if err := reportTexts(ctx, h, *textsFlag); err != nil {
			logger.Error("texts report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if *goldFlag != "" {
		if err := reportGold(ctx, h, *goldFlag, *missesFlag); err != nil {
			logger.Error("gold report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

func reportTexts(ctx context.Context, h *accuracy.Harness, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	texts, err := accuracy.ReadTexts(f)
	if err != nil {
		return err
	}
	words, err := accuracy.UniqueWords(texts)
	if err != nil {
		return err
	}

	cov := h.LexiconCoverage(words)
	fmt.Printf("texts:             %d\n", len(texts))
	fmt.Printf("unique words:      %d\n", cov.Total)
	fmt.Printf("lexicon coverage:  %.2f%% (%d)\n", cov.Percent(), cov.Hits)

	rep, err := h.CompoundCoverage(ctx, words)
	if err != nil {
		return err
	}
	fmt.Printf("resolved:          %.2f%% (%d)\n", rep.ResolvedPercent(), rep.Resolved)
	fmt.Printf("partially guessed: %.2f%% (%d)\n", rep.PartialPercent(), rep.Partial)
	fmt.Printf("fully guessed:     %.2f%% (%d)\n", rep.UnknownPercent(), rep.Unknown)
	return nil
}

func reportGold(ctx context.Context, h *accuracy.Harness, path string, maxMisses int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gold, err := accuracy.ReadGold(f)
	if err != nil {
		return err
	}

	rep, err := h.GoldAccuracy(ctx, gold)
	if err != nil {
		return err
	}
	fmt.Printf("gold words:         %d\n", rep.Total)
	fmt.Printf("counter accuracy:   %.2f%% (%d)\n", rep.CounterPercent(), rep.CounterCorrect)
	fmt.Printf("estimator accuracy: %.2f%% (%d)\n", rep.EstimatorPercent(), rep.EstimatorCorrect)

	for i, m := range rep.Misses {
		if i == maxMisses {
			fmt.Printf("... %d more misses\n", len(rep.Misses)-maxMisses)
			break
		}
		fmt.Printf("miss: %s expected %d got %d\n", m.Word, m.Expected, m.Got)
	}
	return nil
}
