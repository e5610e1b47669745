package ocr

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with MuPDF.
type FitzRasterizer struct {
	DPI float64
}

func (r FitzRasterizer) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &fitzDocument{doc: doc, dpi: dpi}, nil
}

type fitzDocument struct {
	doc *fitz.Document
	dpi float64
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

func (d *fitzDocument) Render(page int) (image.Image, error) {
	return d.doc.ImageDPI(page-1, d.dpi)
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
