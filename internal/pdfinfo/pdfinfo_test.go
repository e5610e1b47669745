package pdfinfo

import (
	"context"
	"testing"

	"github.com/dgallion1/pdfcascade/internal/testpdf"
)

func TestInspect_TextPDF(t *testing.T) {
	path := testpdf.Text(t, "first page", "second page", "third page")

	info, err := Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PageCount != 3 {
		t.Errorf("expected 3 pages, got %d", info.PageCount)
	}
	if info.HasImageStreams {
		t.Error("expected no image streams in a text-only PDF")
	}
	if info.Encrypted {
		t.Error("expected unencrypted PDF")
	}
}

func TestInspect_ImageOnlyPDF(t *testing.T) {
	path := testpdf.ImageOnly(t)

	info, err := Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.PageCount != 1 {
		t.Errorf("expected 1 page, got %d", info.PageCount)
	}
	if !info.HasImageStreams {
		t.Error("expected image streams in a scanned-style PDF")
	}
}

func TestInspect_NotAPDF(t *testing.T) {
	if _, err := Inspect(context.Background(), testpdf.Garbage(t)); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}

func TestInspect_Missing(t *testing.T) {
	if _, err := Inspect(context.Background(), "/nonexistent/file.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInspect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Inspect(ctx, testpdf.Text(t, "x")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestInspect_CorruptedFilesNeverPanic(t *testing.T) {
	src := testpdf.Text(t, "first page", "second page", "third page")
	for _, path := range testpdf.Corrupted(t, src, 500, 11) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("%s: expected an error, got panic: %v", path, r)
				}
			}()
			info, err := Inspect(context.Background(), path)
			if err == nil && info.PageCount < 0 {
				t.Errorf("%s: expected non-negative page count, got %d", path, info.PageCount)
			}
		}()
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{0, 0, false},
		{3, 3, false},
		{-3, 0, true},
	}
	for _, tt := range tests {
		got, err := pageCount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("pageCount(%d): expected error %v, got %v", tt.in, tt.wantErr, err)
		}
		if got != tt.want {
			t.Errorf("pageCount(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
