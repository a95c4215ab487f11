package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lettergreep/internal/adapter/postgres"
	lexiconrepo "github.com/heartmarshall/lettergreep/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lettergreep/internal/config"
	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/lexicon"
	"github.com/heartmarshall/lettergreep/internal/lexicon/celex"
)

// lexiconStore loads the full word → syllable-count mapping.
// Implemented by the Postgres lexicon repository.
type lexiconStore interface {
	LoadAll(ctx context.Context) (map[string]int, error)
}

// LoadLexicon builds the lexicon from the configured source. Any failure,
// including an empty result, is reported as domain.ErrLexiconLoad; there is
// no partial lexicon.
func LoadLexicon(ctx context.Context, cfg config.LexiconConfig, store lexiconStore, log *slog.Logger) (*lexicon.Lexicon, error) {
	var (
		entries map[string]int
		err     error
	)

	switch cfg.Source {
	case config.LexiconSourceCELEX:
		entries, err = loadCELEX(cfg.CELEXPath, log)
	case config.LexiconSourcePostgres:
		if store == nil {
			err = errors.New("no lexicon store configured")
			break
		}
		entries, err = store.LoadAll(ctx)
	default:
		err = fmt.Errorf("unknown source %q", cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLexiconLoad, cfg.Source, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s: no entries", domain.ErrLexiconLoad, cfg.Source)
	}

	lex, err := lexicon.New(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLexiconLoad, cfg.Source, err)
	}

	log.Info("lexicon loaded",
		slog.String("source", cfg.Source),
		slog.Int("entries", lex.Len()),
	)
	return lex, nil
}

// OpenLexicon loads the lexicon configured in cfg for one-shot tools,
// connecting to Postgres only for as long as the load takes.
func OpenLexicon(ctx context.Context, cfg *config.Config, log *slog.Logger) (*lexicon.Lexicon, error) {
	var store lexiconStore
	if cfg.Lexicon.Source == config.LexiconSourcePostgres {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLexiconLoad, err)
		}
		defer pool.Close()
		store = lexiconrepo.New(pool)
	}
	return LoadLexicon(ctx, cfg.Lexicon, store, log)
}

func loadCELEX(path string, log *slog.Logger) (map[string]int, error) {
	parsed, err := celex.Parse(path)
	if err != nil {
		return nil, err
	}
	log.Debug("celex parsed",
		slog.String("path", path),
		slog.Int("total_lines", parsed.Stats.TotalLines),
		slog.Int("skipped_lines", parsed.Stats.SkippedLines),
	)
	return parsed.Entries, nil
}
