package figrender

import (
	"errors"
	"testing"
)

func TestUseLatex(t *testing.T) {
	tests := []struct {
		input    string
		latex    bool
		expected string
	}{
		{`$0.5 + \delta$`, true, `$0.5 + \delta$`},
		{`$X$`, true, `$X$`},
		{`$P^{\delta}$`, false, "P^δ"},
		{`$P_{\delta}$`, false, "P_δ"},
		{"Conditional Median", false, "Conditional Median"},
	}

	for _, tt := range tests {
		if got := useLatex(tt.input); got != tt.latex {
			t.Errorf("useLatex(%q) = %v, expected %v", tt.input, got, tt.latex)
		}
		if tt.latex {
			continue
		}
		if got := plainForm(tt.input); got != tt.expected {
			t.Errorf("plainForm(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCheckText(t *testing.T) {
	h := newMathText()
	tests := []struct {
		input string
		valid bool
	}{
		{"", true},
		{"Datapoints", true},
		{`$0.5 - \delta$`, true},
		{`$P^{\delta}$`, true},
		{`$\notacommand$`, false},
	}

	for _, tt := range tests {
		err := checkText(h, tt.input)
		if tt.valid && err != nil {
			t.Errorf("checkText(%q) = %v, expected nil", tt.input, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidText) {
			t.Errorf("checkText(%q) = %v, expected ErrInvalidText", tt.input, err)
		}
	}
}
