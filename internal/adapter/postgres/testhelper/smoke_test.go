package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	source := UniqueSource("smoke")
	e := SeedLexiconEntry(t, pool, "smoke-"+source, 2, source)

	var syllables int
	err := pool.QueryRow(
		context.Background(),
		`SELECT syllables FROM lexicon_entries WHERE word = $1`,
		e.Word,
	).Scan(&syllables)
	if err != nil {
		t.Fatalf("expected entry in DB, got error: %v", err)
	}

	if syllables != e.Syllables {
		t.Fatalf("expected %d syllables, got %d", e.Syllables, syllables)
	}
}
