package lexicon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lettergreep/internal/domain"
)

func TestNew(t *testing.T) {
	t.Parallel()

	lex, err := New(map[string]int{"Boeken": 2, "kast": 1, "Één": 1, "  ": 3})
	require.NoError(t, err)

	assert.Equal(t, 3, lex.Len())

	n, ok := lex.Lookup("boeken")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	assert.True(t, lex.Contains("een"))
	assert.False(t, lex.Contains("Boeken"), "lookups are on normalized words only")
	assert.True(t, lex.Contains("kast"))
}

func TestNew_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -2} {
		lex, err := New(map[string]int{"kast": 1, "stoel": n})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, lex)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	src := map[string]int{"kast": 1}
	lex, err := New(src)
	require.NoError(t, err)

	src["kast"] = 7
	src["stoel"] = 1

	n, _ := lex.Lookup("kast")
	assert.Equal(t, 1, n)
	assert.False(t, lex.Contains("stoel"))
}

func TestNew_FoldCollisionIsDeterministic(t *testing.T) {
	t.Parallel()

	for range 20 {
		lex, err := New(map[string]int{"een": 1, "één": 2})
		require.NoError(t, err)
		n, _ := lex.Lookup("een")
		assert.Equal(t, 2, n, "\"één\" sorts after \"een\" and wins")
	}
}

func TestLexicon_ConcurrentReads(t *testing.T) {
	t.Parallel()

	lex, err := New(map[string]int{"boeken": 2, "kast": 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				n, ok := lex.Lookup("boeken")
				if !ok || n != 2 {
					t.Errorf("Lookup(boeken) = %d, %v", n, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}
