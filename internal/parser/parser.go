// Package parser reads the text layer of a PDF directly from its content
// streams. PDFReader and FitzReader use different engines with different
// layout heuristics, so one often recovers text the other misses.
package parser

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfcascade/internal/extract"
)

// Reader extracts the text of every page of a PDF file.
type Reader interface {
	Extract(ctx context.Context, path string) (extract.Output, error)
}

// IsPDF reports whether filename has a .pdf extension.
func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func methodError(tag extract.MethodTag, err error) error {
	return &extract.ExtractionError{Method: tag, Cause: err}
}
