// Package pdfinfo reads document-level facts from a PDF without extracting text.
package pdfinfo

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Info describes a PDF's structure.
type Info struct {
	PageCount       int  `json:"page_count"`
	HasImageStreams bool `json:"has_image_streams"`
	Encrypted       bool `json:"encrypted"`
}

// Inspect opens path with pdfcpu and reports page count, whether any image
// XObjects exist, and whether the file is encrypted. pdfcpu panics on some
// malformed files; that is reported as an error.
func Inspect(ctx context.Context, path string) (info *Info, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	defer func() {
		if p := recover(); p != nil {
			info, err = nil, fmt.Errorf("pdfcpu: panic: %v", p)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("pdfcpu page count: %w", err)
	}

	pages, err := pageCount(pctx.PageCount)
	if err != nil {
		return nil, err
	}

	return &Info{
		PageCount:       pages,
		HasImageStreams: hasImageStreams(pctx),
		Encrypted:       pctx.Encrypt != nil,
	}, nil
}

// pageCount rejects the negative /Count values some broken page trees carry.
func pageCount(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("pdfcpu page count: invalid /Count %d", n)
	}
	return n, nil
}

// hasImageStreams scans the cross-reference table for image stream objects.
func hasImageStreams(ctx *model.Context) bool {
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
