package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lettergreep/internal/domain"
)

// UniqueSource returns a source slug no other test uses, so tests sharing the
// container can count and delete their own rows.
func UniqueSource(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedLexiconEntry inserts one entry directly and returns it.
func SeedLexiconEntry(t *testing.T, pool *pgxpool.Pool, word string, syllables int, source string) domain.LexiconEntry {
	t.Helper()

	e := domain.LexiconEntry{
		Word:      word,
		Syllables: syllables,
		Source:    source,
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lexicon_entries (word, syllables, source, updated_at) VALUES ($1, $2, $3, $4)`,
		e.Word, e.Syllables, e.Source, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedLexiconEntry %q: %v", word, err)
	}
	return e
}
