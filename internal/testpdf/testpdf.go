// Package testpdf writes small PDF fixtures for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// Text writes a born-digital PDF with one page per entry in pages and
// returns its path.
func Text(t testing.TB, pages ...string) string {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, body := range pages {
		pdf.AddPage()
		pdf.MultiCell(0, 6, body, "", "L", false)
	}
	return write(t, pdf, "text.pdf")
}

// ImageOnly writes a one-page PDF whose only content is a raster image,
// like a scan without a text layer.
func ImageOnly(t testing.TB) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scan", opts, &buf)
	pdf.ImageOptions("scan", 10, 10, 100, 100, false, opts, 0, "")
	return write(t, pdf, "scan.pdf")
}

// Garbage writes a file with a .pdf name that is not a PDF.
func Garbage(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Corrupted writes n damaged copies of the PDF at src. Each copy is either
// truncated or has a few bytes flipped. The same seed gives the same files.
func Corrupted(t testing.TB, src string, n int, seed uint64) []string {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range n {
		buf := append([]byte(nil), data...)
		if rng.IntN(2) == 0 {
			buf = buf[:rng.IntN(len(buf))]
		} else {
			for range 1 + rng.IntN(8) {
				buf[rng.IntN(len(buf))] ^= byte(1 << rng.IntN(8))
			}
		}
		paths[i] = filepath.Join(dir, fmt.Sprintf("corrupt-%03d.pdf", i))
		if err := os.WriteFile(paths[i], buf, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

func write(t testing.TB, pdf *gofpdf.Fpdf, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}
