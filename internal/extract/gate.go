package extract

import "unicode"

// DefaultMinChars is the non-whitespace character count a candidate must exceed.
const DefaultMinChars = 100

// Gate decides whether extracted text looks like real content.
type Gate struct {
	MinChars int
}

// Meaningful reports whether text has strictly more than MinChars
// non-whitespace characters.
func (g Gate) Meaningful(text string) bool {
	return CountNonSpace(text) > g.MinChars
}

// CountNonSpace counts the runes in text that are not whitespace. The
// ASCII information separators U+001C..U+001F count as whitespace too;
// some extractors emit them between records and columns.
func CountNonSpace(text string) int {
	n := 0
	for _, r := range text {
		if !isSpace(r) {
			n++
		}
	}
	return n
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}
