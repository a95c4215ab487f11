// Package textnorm turns raw Dutch text into the canonical form used for
// lexicon lookups and compound splitting: lowercase, accent-free ASCII with
// punctuation removed and apostrophes kept only inside words.
//
// All functions are pure and safe for concurrent use.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/lettergreep/internal/domain"
)

const apostrophe = '\''

// Normalize applies the full pipeline in order:
//   - Unicode-aware lowercasing
//   - accent stripping (NFD, combining marks and non-ASCII runes dropped)
//   - removal of apostrophes that are not between two word characters
//   - removal of everything that is not a word character, whitespace or apostrophe
//
// Input that is not valid UTF-8 yields domain.ErrInvalidEncoding and no output.
func Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("textnorm: normalize: %w", domain.ErrInvalidEncoding)
	}

	stripped, err := StripAccents(Lower(text))
	if err != nil {
		return "", fmt.Errorf("textnorm: normalize: %w", err)
	}

	return RemovePunctuation(RemoveApostrophes(stripped)), nil
}

// Lower lowercases text using Unicode case mapping.
func Lower(text string) string {
	return strings.ToLower(text)
}

// StripAccents decomposes text to base letters plus combining marks, drops the
// marks and then drops every rune outside the ASCII range.
func StripAccents(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", domain.ErrInvalidEncoding
	}

	// Chained transformers keep internal buffers, so each call gets its own.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)

	out, _, err := transform.String(t, text)
	if err != nil {
		return "", fmt.Errorf("strip accents: %w: %w", domain.ErrInvalidEncoding, err)
	}
	return out, nil
}

// RemoveApostrophes deletes every apostrophe that lacks a word character on
// both sides. Contractions and possessives ("auto's", "zo'n") keep theirs;
// quotation marks lose theirs. Neighbours are judged on the input text, so a
// run of apostrophes is removed as a whole.
func RemoveApostrophes(text string) string {
	if !strings.ContainsRune(text, apostrophe) {
		return text
	}

	rs := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range rs {
		if r == apostrophe {
			before := i > 0 && isWordRune(rs[i-1])
			after := i+1 < len(rs) && isWordRune(rs[i+1])
			if !before || !after {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RemovePunctuation deletes every rune that is not a word character,
// whitespace or an apostrophe.
func RemovePunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || isSpace(r) || r == apostrophe {
			return r
		}
		return -1
	}, text)
}

// Tokenize splits normalized text on whitespace. Empty tokens are dropped.
func Tokenize(normalized string) []string {
	return strings.FieldsFunc(normalized, isSpace)
}

// FoldKey prepares a lexicon headword for storage and comparison: trimmed,
// lowercased and accent-stripped. Punctuation is kept so that entries such as
// "auto's" still match normalized tokens. Invalid UTF-8 sequences are dropped.
func FoldKey(word string) string {
	word = strings.TrimFunc(strings.ToValidUTF8(word, ""), isSpace)
	if word == "" {
		return ""
	}
	folded, err := StripAccents(Lower(word))
	if err != nil {
		return Lower(word)
	}
	return folded
}

// isWordRune mirrors the regexp \w class: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which separate words as well.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
