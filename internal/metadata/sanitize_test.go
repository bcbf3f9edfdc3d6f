// file: internal/metadata/sanitize_test.go
// version: 1.0.0
// guid: af21b563-6134-46c2-91e6-b91c6ad908d2

package metadata

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"valid name", "Abbey Road", "Abbey Road"},
		{"every reserved char", `a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"surrounding whitespace", "  Let It Be \t", "Let It Be"},
		{"inner whitespace kept", "Sgt.  Pepper", "Sgt.  Pepper"},
		{"only reserved", "???", "___"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"AC/DC",
		"  <Live> at: \"Wembley\"  ",
		`C:\Music\track?.mp3`,
		" \u00a0spaced\u00a0 ",
		"plain",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSanitizer_NormalizeUnicode(t *testing.T) {
	decomposed := "Beyonce\u0301"
	composed := "Beyonc\u00e9"

	plain := Sanitizer{}
	if plain.Clean(decomposed) == composed {
		t.Fatal("expected default sanitizer to keep decomposed form")
	}

	nfc := Sanitizer{NormalizeUnicode: true}
	if got := nfc.Clean(decomposed); got != composed {
		t.Errorf("expected %q, got %q", composed, got)
	}
	if got := nfc.Clean(nfc.Clean(decomposed)); got != composed {
		t.Errorf("normalizing sanitizer not idempotent: %q", got)
	}
}
