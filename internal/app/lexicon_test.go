package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lettergreep/internal/config"
	"github.com/heartmarshall/lettergreep/internal/domain"
)

type storeStub struct {
	entries map[string]int
	err     error
}

func (s storeStub) LoadAll(context.Context) (map[string]int, error) {
	return s.entries, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadLexicon_CELEX(t *testing.T) {
	t.Parallel()

	cfg := config.LexiconConfig{
		Source:    config.LexiconSourceCELEX,
		CELEXPath: filepath.Join("testdata", "dpw_small.cd"),
	}

	lex, err := LoadLexicon(context.Background(), cfg, nil, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, lex.Len())
	n, ok := lex.Lookup("boeken")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestLoadLexicon_Postgres(t *testing.T) {
	t.Parallel()

	cfg := config.LexiconConfig{Source: config.LexiconSourcePostgres}
	store := storeStub{entries: map[string]int{"Café": 2, "kast": 1}}

	lex, err := LoadLexicon(context.Background(), cfg, store, discardLogger())
	require.NoError(t, err)

	n, ok := lex.Lookup("cafe")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestLoadLexicon_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   config.LexiconConfig
		store lexiconStore
	}{
		{
			name: "missing celex file",
			cfg:  config.LexiconConfig{Source: config.LexiconSourceCELEX, CELEXPath: filepath.Join("testdata", "missing.cd")},
		},
		{
			name: "unknown source",
			cfg:  config.LexiconConfig{Source: "wiktionary"},
		},
		{
			name: "postgres without store",
			cfg:  config.LexiconConfig{Source: config.LexiconSourcePostgres},
		},
		{
			name:  "store failure",
			cfg:   config.LexiconConfig{Source: config.LexiconSourcePostgres},
			store: storeStub{err: errors.New("connection refused")},
		},
		{
			name:  "empty store",
			cfg:   config.LexiconConfig{Source: config.LexiconSourcePostgres},
			store: storeStub{entries: map[string]int{}},
		},
		{
			name:  "non-positive count",
			cfg:   config.LexiconConfig{Source: config.LexiconSourcePostgres},
			store: storeStub{entries: map[string]int{"kast": 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lex, err := LoadLexicon(context.Background(), tt.cfg, tt.store, discardLogger())
			assert.Nil(t, lex)
			assert.ErrorIs(t, err, domain.ErrLexiconLoad)
		})
	}
}
