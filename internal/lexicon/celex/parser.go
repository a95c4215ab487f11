// Package celex parses CELEX Dutch phonology word-form files (dpw.cd) into
// word → syllable-count entries. Pure function: file path in, entries out.
package celex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

const (
	fieldSeparator    = `\`
	syllableSeparator = "-"

	wordField      = 1
	syllablesField = 4
)

// errSkipLine signals that a line carries no usable entry.
var errSkipLine = errors.New("skip line")

// ParseResult holds the parsed lexicon data.
type ParseResult struct {
	Entries map[string]int // folded word → syllable count
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	ParsedLines  int
	SkippedLines int
	UniqueWords  int
}

// Parse reads a dpw.cd file and returns the parsed entries.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}

// ParseReader parses dpw.cd content from r. Lines without a syllabification
// are skipped; a later line for the same word overwrites an earlier one.
func ParseReader(r io.Reader) (ParseResult, error) {
	result := ParseResult{
		Entries: make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		result.Stats.TotalLines++

		word, count, err := parseLine(scanner.Text())
		if err != nil {
			result.Stats.SkippedLines++
			continue
		}

		result.Stats.ParsedLines++
		result.Entries[word] = count
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.UniqueWords = len(result.Entries)
	return result, nil
}

// ToDomainEntries converts the parsed data to domain entries sorted by word.
func (r ParseResult) ToDomainEntries(now time.Time) []domain.LexiconEntry {
	words := make([]string, 0, len(r.Entries))
	for w := range r.Entries {
		words = append(words, w)
	}
	slices.Sort(words)

	entries := make([]domain.LexiconEntry, 0, len(words))
	for _, w := range words {
		entries = append(entries, domain.LexiconEntry{
			Word:      w,
			Syllables: r.Entries[w],
			Source:    domain.SourceCELEX,
			UpdatedAt: now,
		})
	}
	return entries
}

// parseLine extracts the folded headword and its syllable count.
// CELEX format: IdNum\Head\Inl\PhonStrsDISC\PhonSylBCLX\... where the fifth
// field holds the syllables separated by hyphens.
func parseLine(line string) (string, int, error) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return "", 0, errSkipLine
	}

	fields := strings.Split(line, fieldSeparator)
	if len(fields) <= syllablesField {
		return "", 0, errSkipLine
	}

	syllables := fields[syllablesField]
	if syllables == "" {
		return "", 0, errSkipLine
	}

	word := textnorm.FoldKey(fields[wordField])
	if word == "" {
		return "", 0, errSkipLine
	}

	return word, len(strings.Split(syllables, syllableSeparator)), nil
}
