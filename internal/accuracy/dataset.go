// Package accuracy measures how well the syllable counter does on real data:
// how much of a corpus the lexicon covers directly, how much compound
// splitting adds, and how often counts match a hand-checked gold list.
package accuracy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/heartmarshall/lettergreep/internal/domain"
	"github.com/heartmarshall/lettergreep/internal/textnorm"
)

const (
	textColumn      = "text"
	wordColumn      = "word"
	syllablesColumn = "syllables"
	goldSeparator   = ';'
)

// GoldEntry is a word with its verified syllable count.
type GoldEntry struct {
	Word      string
	Syllables int
}

// ReadTexts reads a comma-separated file with a "text" column and returns
// that column in file order.
func ReadTexts(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read texts: %w", domain.NewValidationError(textColumn, "missing header"))
		}
		return nil, fmt.Errorf("read texts header: %w", err)
	}
	col := slices.Index(trimAll(header), textColumn)
	if col < 0 {
		return nil, fmt.Errorf("read texts: %w", domain.NewValidationError(textColumn, "column not found"))
	}

	var texts []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read texts: %w", err)
		}
		if col < len(record) {
			texts = append(texts, record[col])
		}
	}
	return texts, nil
}

// ReadGold reads a semicolon-separated file with "word" and "syllables"
// columns.
func ReadGold(r io.Reader) ([]GoldEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = goldSeparator

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read gold: %w", domain.NewValidationError(wordColumn, "missing header"))
		}
		return nil, fmt.Errorf("read gold header: %w", err)
	}
	header = trimAll(header)
	wordCol := slices.Index(header, wordColumn)
	sylCol := slices.Index(header, syllablesColumn)
	if wordCol < 0 || sylCol < 0 {
		return nil, fmt.Errorf("read gold: %w", domain.NewValidationError("header", "need word and syllables columns"))
	}

	var gold []GoldEntry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read gold: %w", err)
		}

		line, _ := cr.FieldPos(0)
		n, err := strconv.Atoi(strings.TrimSpace(record[sylCol]))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("read gold: line %d: %w", line,
				domain.NewValidationError(syllablesColumn, fmt.Sprintf("invalid count %q", record[sylCol])))
		}
		gold = append(gold, GoldEntry{Word: strings.TrimSpace(record[wordCol]), Syllables: n})
	}
	return gold, nil
}

// UniqueWords normalizes every text and returns the distinct tokens, sorted.
func UniqueWords(texts []string) ([]string, error) {
	seen := make(map[string]struct{})
	for i, text := range texts {
		normalized, err := textnorm.Normalize(text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		for _, token := range textnorm.Tokenize(normalized) {
			seen[token] = struct{}{}
		}
	}

	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	slices.Sort(words)
	return words, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
	}
	return out
}
