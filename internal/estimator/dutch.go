// Package estimator provides heuristic syllable counters used when a word is
// neither in the lexicon nor decomposable into lexicon words.
package estimator

import "strings"

// nuclei lists Dutch multi-letter vowels that form a single syllable nucleus,
// longest first so that matching is greedy.
var nuclei = []string{
	"aai", "ooi", "oei", "eeu", "ieu",
	"aa", "ee", "oo", "uu", "ie", "oe", "eu", "ui", "ij", "ei", "ou", "au",
}

// Dutch counts vowel nuclei in a word. It expects normalized ASCII input;
// accented vowels are not recognised. The zero value is ready to use and safe for
// concurrent use.
type Dutch struct{}

// Estimate returns 0 for empty or whitespace-only input and at least 1 for
// anything else.
func (Dutch) Estimate(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	count := 0
	for i := 0; i < len(word); {
		if !isVowel(word[i]) {
			i++
			continue
		}
		count++
		i += nucleusLen(word[i:])
	}

	if count == 0 {
		return 1
	}
	return count
}

// nucleusLen returns how many bytes of s, which starts with a vowel, belong
// to the same nucleus.
func nucleusLen(s string) int {
	for _, n := range nuclei {
		if strings.HasPrefix(s, n) {
			return len(n)
		}
	}
	return 1
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
