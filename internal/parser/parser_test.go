package parser

import "testing"

func TestIsPDF(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"archive.tar.pdf", true},
		{"notes.txt", false},
		{"pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPDF(tt.filename); got != tt.want {
			t.Errorf("IsPDF(%q): expected %v, got %v", tt.filename, tt.want, got)
		}
	}
}
