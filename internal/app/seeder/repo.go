// Package seeder imports syllable lexicons into the Postgres lexicon store.
package seeder

import (
	"context"

	"github.com/heartmarshall/lettergreep/internal/domain"
)

// LexiconBulkRepo defines the batch repository contract consumed by the seeder pipeline.
// Implemented by lexicon.Repo.
type LexiconBulkRepo interface {
	// BulkUpsert inserts or updates entries and reports how many rows changed.
	BulkUpsert(ctx context.Context, entries []domain.LexiconEntry) (int, error)
	DeleteSource(ctx context.Context, source string) (int, error)
	CountBySource(ctx context.Context, source string) (int, error)
	// Count returns the number of rows across all sources.
	Count(ctx context.Context) (int, error)
	// Get returns the stored entry for word, or domain.ErrNotFound.
	Get(ctx context.Context, word string) (domain.LexiconEntry, error)
}

// TxRunner runs fn inside a transaction carried by ctx.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
