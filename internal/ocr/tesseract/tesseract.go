//go:build !notesseract

// Package tesseract recognizes page images with Tesseract through gosseract.
// Build with -tags notesseract on hosts without libtesseract; Recognize then
// always fails and the extraction chain moves on.
package tesseract

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer runs Tesseract with one client per image.
type Recognizer struct {
	Languages []string // e.g. "eng", "deu"; empty means the engine default
	PSM       int      // page segmentation mode; zero leaves the engine default
	DPI       int      // resolution the image was rendered at; zero means unknown

	clientFactory func() *gosseract.Client
}

// New returns a Recognizer for the given languages.
func New(languages ...string) *Recognizer {
	return &Recognizer{
		Languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

func (r *Recognizer) Recognize(ctx context.Context, img []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	newClient := r.clientFactory
	if newClient == nil {
		newClient = gosseract.NewClient
	}
	c := newClient()
	defer c.Close()

	if len(r.Languages) > 0 {
		if err := c.SetLanguage(r.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if r.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(r.PSM)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}
	if r.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(r.DPI)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	if err := c.SetImageFromBytes(img); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
