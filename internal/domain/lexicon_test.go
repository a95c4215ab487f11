package domain

import (
	"errors"
	"testing"
)

func TestLexiconEntry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entry   LexiconEntry
		wantErr bool
		fields  int
	}{
		{name: "valid", entry: LexiconEntry{Word: "boeken", Syllables: 2, Source: SourceCELEX}},
		{name: "empty word", entry: LexiconEntry{Syllables: 2, Source: SourceCELEX}, wantErr: true, fields: 1},
		{name: "zero syllables", entry: LexiconEntry{Word: "kast", Source: SourceCELEX}, wantErr: true, fields: 1},
		{name: "negative syllables", entry: LexiconEntry{Word: "kast", Syllables: -1, Source: SourceCELEX}, wantErr: true, fields: 1},
		{name: "everything missing", entry: LexiconEntry{}, wantErr: true, fields: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.entry.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(ve.Errors) != tt.fields {
				t.Errorf("field errors = %d, want %d", len(ve.Errors), tt.fields)
			}
		})
	}
}
