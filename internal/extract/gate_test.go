package extract

import (
	"strings"
	"testing"
)

func TestGate_ThresholdBoundary(t *testing.T) {
	g := Gate{MinChars: DefaultMinChars}
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", " \n\t\r\f ", false},
		{"exactly 100", strings.Repeat("a", 100), false},
		{"101", strings.Repeat("a", 101), true},
		{"100 with whitespace", strings.Repeat("ab \n", 50), false},
		{"101 with whitespace", strings.Repeat("ab \n", 50) + "c", true},
	}
	for _, tt := range tests {
		if got := g.Meaningful(tt.text); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestCountNonSpace_Unicode(t *testing.T) {
	// U+00A0 and U+3000 are Unicode whitespace.
	text := "\u00e9\u00a0\u65e5\u672c\u3000\u8a9e\n"
	if got := CountNonSpace(text); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestGate_ZeroThreshold(t *testing.T) {
	g := Gate{}
	if g.Meaningful("   ") {
		t.Error("expected whitespace to fail a zero threshold")
	}
	if !g.Meaningful("x") {
		t.Error("expected a single character to pass a zero threshold")
	}
}

func TestCountNonSpace_InformationSeparators(t *testing.T) {
	text := "a\x1cb\x1dc\x1ed\x1fe"
	if got := CountNonSpace(text); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	// 100 letters padded with separators must still fail the gate.
	padded := strings.Repeat("a\x1f", 100)
	if (Gate{MinChars: DefaultMinChars}).Meaningful(padded) {
		t.Error("expected separators not to count toward the threshold")
	}
}
