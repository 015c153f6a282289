package classifier_test

import (
	"testing"

	"github.com/jonesrussell/meeting-tracker/internal/classifier"
)

func TestNameValidator_LooksLikePersonName(t *testing.T) {
	t.Helper()

	v := classifier.NewNameValidator(0)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"two word name", "Andy Jassy", true},
		{"three word name", "Mary Teresa Barra", true},
		{"hyphenated surname", "Dara Khosrow-Shahi", true},
		{"single word", "Jassy", false},
		{"four words", "John Jacob Jingleheimer Schmidt", false},
		{"lowercase first token", "andy Jassy", false},
		{"single letter component", "J Smith", false},
		{"overlong component", "Jassyabcdefghijklmn Smith", false},
		{"all caps fragment", "NYSE IPO", false},
		{"blocklisted title word", "Chief Executive", false},
		{"blocklisted place", "New York", false},
		{"tracked figure first name", "Donald Smith", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.LooksLikePersonName(tt.candidate); got != tt.want {
				t.Errorf("LooksLikePersonName(%q) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestNameValidator_LowercaseRatio(t *testing.T) {
	t.Helper()

	// A strict validator rejects tokens whose tail is mostly uppercase; a
	// permissive one lets them through.
	strict := classifier.NewNameValidator(0.9)
	loose := classifier.NewNameValidator(0.01)

	candidate := "McDonald Smith"

	if strict.LooksLikePersonName(candidate) {
		t.Errorf("strict validator accepted %q", candidate)
	}
	if !loose.LooksLikePersonName(candidate) {
		t.Errorf("permissive validator rejected %q", candidate)
	}
}
