// Package ocr recovers text from PDFs that have no usable text layer by
// rendering each page to an image and running optical character recognition.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/dgallion1/pdfcascade/internal/extract"
)

// DefaultDPI is the render resolution used when none is configured.
const DefaultDPI = 200

// Rasterizer opens a PDF for page rendering.
type Rasterizer interface {
	Open(path string) (Document, error)
}

// Document renders individual pages. Pages are numbered from 1.
type Document interface {
	NumPage() int
	Render(page int) (image.Image, error)
	Close() error
}

// Recognizer turns an encoded PNG into text.
type Recognizer interface {
	Recognize(ctx context.Context, img []byte) (string, error)
}

// Extractor renders every page and recognizes each one independently.
type Extractor struct {
	Rasterizer Rasterizer
	Recognizer Recognizer
}

// Extract returns the recognized text of every page in page order. A page
// that fails to render or recognize contributes nothing.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.Output, error) {
	doc, err := e.Rasterizer.Open(path)
	if err != nil {
		return extract.Output{}, &extract.ExtractionError{Method: extract.MethodOCR, Cause: fmt.Errorf("rasterize: %w", err)}
	}
	defer doc.Close()

	out, err := extract.CollectPages(ctx, doc.NumPage(), func(ctx context.Context, page int) (string, error) {
		return e.page(ctx, doc, page)
	})
	if err != nil {
		return out, &extract.ExtractionError{Method: extract.MethodOCR, Cause: err}
	}
	return out, nil
}

// page owns the rendered image; it is dropped as soon as recognition returns.
func (e *Extractor) page(ctx context.Context, doc Document, page int) (string, error) {
	img, err := doc.Render(page)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	text, err := e.Recognizer.Recognize(ctx, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
