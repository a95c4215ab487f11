package celex

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lettergreep/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// --- Single line parsing ---

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantWord  string
		wantCount int
		wantSkip  bool
	}{
		{name: "monosyllable", line: `4\kast\300\4\'kAst\[CVCC]\[kAst]`, wantWord: "kast", wantCount: 1},
		{name: "three syllables", line: `2\aanbieding\57\2\'a:n-bi-dIN\[VVC]`, wantWord: "aanbieding", wantCount: 3},
		{name: "headword folded", line: `5\Ideeën\40\5\i-'de-j@\x`, wantWord: "ideeen", wantCount: 3},
		{name: "exactly five fields", line: `9\en\1\9\'En`, wantWord: "en", wantCount: 1},
		{name: "crlf line ending", line: "10\\deur\\1\\10\\'d2:r\\[CVVC]\r", wantWord: "deur", wantCount: 1},
		{name: "empty line", line: "", wantSkip: true},
		{name: "too few fields", line: `1\a\2\3`, wantSkip: true},
		{name: "empty syllables", line: `6\leeg\1\6\\[CVVC]`, wantSkip: true},
		{name: "empty headword", line: `6\ \1\6\'a:\[VV]`, wantSkip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, count, err := parseLine(tt.line)
			if tt.wantSkip {
				if err != errSkipLine {
					t.Errorf("parseLine(%q) error = %v, want errSkipLine", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLine(%q) unexpected error: %v", tt.line, err)
			}
			if word != tt.wantWord {
				t.Errorf("word = %q, want %q", word, tt.wantWord)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

// --- Whole file parsing ---

func TestParse_SampleFile(t *testing.T) {
	result, err := Parse(testdataPath(t, "dpw_sample.cd"))
	require.NoError(t, err)

	assert.Equal(t, Stats{TotalLines: 10, ParsedLines: 7, SkippedLines: 3, UniqueWords: 6}, result.Stats)
	assert.Equal(t, map[string]int{
		"a":          1,
		"aanbieding": 3,
		"boekenkast": 3,
		"kast":       2, // the later line wins
		"ideeen":     3,
		"auto's":     2,
	}, result.Entries)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(testdataPath(t, "does_not_exist.cd"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestParseReader_Empty(t *testing.T) {
	result, err := ParseReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, Stats{}, result.Stats)
}

func TestParseResult_ToDomainEntries(t *testing.T) {
	result := ParseResult{Entries: map[string]int{"kast": 1, "boeken": 2}}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := result.ToDomainEntries(now)

	require.Len(t, entries, 2)
	assert.Equal(t, domain.LexiconEntry{Word: "boeken", Syllables: 2, Source: domain.SourceCELEX, UpdatedAt: now}, entries[0])
	assert.Equal(t, "kast", entries[1].Word)
	for _, e := range entries {
		assert.NoError(t, e.Validate())
	}
}
