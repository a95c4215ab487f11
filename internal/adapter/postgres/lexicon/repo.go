// Package lexicon stores lexicon entries in PostgreSQL.
package lexicon

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lettergreep/internal/adapter/postgres"
	"github.com/heartmarshall/lettergreep/internal/domain"
)

const (
	table      = "lexicon_entries"
	colWord    = "word"
	colSyl     = "syllables"
	colSource  = "source"
	colUpdated = "updated_at"
	entityName = "lexicon entry"
)

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// upsertSQL only touches a row when its count or source actually changes, so
// RowsAffected reports real changes and re-seeding the same data returns 0.
const upsertSQL = `INSERT INTO lexicon_entries (word, syllables, source, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (word) DO UPDATE
SET syllables = EXCLUDED.syllables, source = EXCLUDED.source, updated_at = EXCLUDED.updated_at
WHERE (lexicon_entries.syllables, lexicon_entries.source) IS DISTINCT FROM (EXCLUDED.syllables, EXCLUDED.source)`

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// BulkUpsert inserts or updates entries with a single pgx.Batch and returns
// the number of rows inserted or changed. Every entry is validated before
// anything is sent.
func (r *Repo) BulkUpsert(ctx context.Context, entries []domain.LexiconEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("%s %q: %w", entityName, e.Word, err)
		}
		updated := e.UpdatedAt
		if updated.IsZero() {
			updated = time.Now().UTC()
		}
		batch.Queue(upsertSQL, e.Word, e.Syllables, e.Source, updated)
	}

	return r.sendBatchExec(ctx, batch)
}

// LoadAll returns every stored word with its syllable count.
func (r *Repo) LoadAll(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.Select(colWord, colSyl).From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			word string
			n    int
		)
		if err := rows.Scan(&word, &n); err != nil {
			return nil, fmt.Errorf("scan lexicon row: %w", err)
		}
		counts[word] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	return counts, nil
}

// Get returns the stored entry for word, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, word string) (domain.LexiconEntry, error) {
	query, args, err := psql.
		Select(colWord, colSyl, colSource, colUpdated).
		From(table).
		Where(sq.Eq{colWord: word}).
		ToSql()
	if err != nil {
		return domain.LexiconEntry{}, fmt.Errorf("build get query: %w", err)
	}

	var e domain.LexiconEntry
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&e.Word, &e.Syllables, &e.Source, &e.UpdatedAt); err != nil {
		return domain.LexiconEntry{}, postgres.MapError(err, entityName, word)
	}
	return e, nil
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lexicon: %w", err)
	}
	return n, nil
}

// CountBySource returns the number of entries stored for source.
func (r *Repo) CountBySource(ctx context.Context, source string) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).Where(sq.Eq{colSource: source}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lexicon source %q: %w", source, err)
	}
	return n, nil
}

// DeleteSource removes every entry of source and returns how many went.
func (r *Repo) DeleteSource(ctx context.Context, source string) (int, error) {
	query, args, err := psql.Delete(table).Where(sq.Eq{colSource: source}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete lexicon source %q: %w", source, err)
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks the connection; used by readiness probes.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// sendBatchExec sends a pgx.Batch and sums affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
