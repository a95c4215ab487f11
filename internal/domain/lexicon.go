package domain

import "time"

// Source slugs for lexicon entries.
const (
	SourceCELEX  = "celex"
	SourceManual = "manual"
)

// LexiconEntry is one word with its syllable count as delivered by an external
// lexical resource. Word is already folded (lowercase, accents stripped).
type LexiconEntry struct {
	Word      string
	Syllables int
	Source    string
	UpdatedAt time.Time
}

// Validate checks the invariants every stored entry must satisfy.
func (e LexiconEntry) Validate() error {
	var errs []FieldError
	if e.Word == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if e.Syllables <= 0 {
		errs = append(errs, FieldError{Field: "syllables", Message: "must be positive"})
	}
	if e.Source == "" {
		errs = append(errs, FieldError{Field: "source", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
