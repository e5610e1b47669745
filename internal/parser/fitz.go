package parser

import (
	"context"
	"fmt"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/gen2brain/go-fitz"
)

// FitzReader extracts text with MuPDF through go-fitz.
type FitzReader struct{}

var _ Reader = FitzReader{}

func (FitzReader) Extract(ctx context.Context, path string) (extract.Output, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return extract.Output{}, methodError(extract.MethodStructuredB, fmt.Errorf("open pdf: %w", err))
	}
	defer doc.Close()

	// go-fitz numbers pages from zero.
	out, err := extract.CollectPages(ctx, doc.NumPage(), func(_ context.Context, i int) (string, error) {
		return doc.Text(i - 1)
	})
	if err != nil {
		return out, methodError(extract.MethodStructuredB, err)
	}
	return out, nil
}
