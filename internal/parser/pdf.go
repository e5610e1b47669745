package parser

import (
	"context"
	"fmt"
	"os"

	"github.com/dgallion1/pdfcascade/internal/extract"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFReader extracts text with the pure-Go ledongthuc/pdf library.
type PDFReader struct{}

var _ Reader = PDFReader{}

func (PDFReader) Extract(ctx context.Context, path string) (extract.Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return extract.Output{}, methodError(extract.MethodStructuredA, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return extract.Output{}, methodError(extract.MethodStructuredA, err)
	}

	reader, err := newPDFReader(f, info.Size())
	if err != nil {
		return extract.Output{}, methodError(extract.MethodStructuredA, err)
	}

	out, err := extract.CollectPages(ctx, reader.NumPage(), func(_ context.Context, i int) (string, error) {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", nil
		}
		return page.GetPlainText(nil)
	})
	if err != nil {
		return out, methodError(extract.MethodStructuredA, err)
	}
	return out, nil
}

// newPDFReader parses the trailer and cross-reference table. The library
// panics on some malformed files; that is reported as an error here so the
// caller's deferred Close still runs.
func newPDFReader(f *os.File, size int64) (r *pdflib.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("open pdf: panic: %v", p)
		}
	}()
	r, err = pdflib.NewReader(f, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return r, nil
}
