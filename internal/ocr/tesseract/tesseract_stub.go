//go:build notesseract

package tesseract

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by every Recognize call in builds without Tesseract.
var ErrUnavailable = errors.New("tesseract support not compiled in (built with notesseract)")

// Recognizer is the stand-in used when Tesseract is not linked.
type Recognizer struct {
	Languages []string
	PSM       int
	DPI       int
}

// New returns a Recognizer that always fails.
func New(languages ...string) *Recognizer {
	return &Recognizer{Languages: languages}
}

func (r *Recognizer) Recognize(ctx context.Context, img []byte) (string, error) {
	return "", ErrUnavailable
}
