package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"MIN_CHARS", "OCR_DPI", "OCR_LANGUAGES", "OCR_TIMEOUT", "ENABLE_OCR", "ENABLE_EXTERNAL_TOOL", "PDFTOTEXT_BIN", "OCR_PSM", "LOG_LEVEL", "INSPECT_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.MinChars != 100 {
		t.Errorf("expected MinChars=100, got %d", cfg.MinChars)
	}
	if cfg.OCRDPI != 200 {
		t.Errorf("expected OCRDPI=200, got %d", cfg.OCRDPI)
	}
	if !reflect.DeepEqual(cfg.OCRLanguages, []string{"eng"}) {
		t.Errorf("expected [eng], got %v", cfg.OCRLanguages)
	}
	if !cfg.EnableOCR || !cfg.EnableExternalTool {
		t.Error("expected every method enabled by default")
	}
	if cfg.OCRTimeout != 5*time.Minute {
		t.Errorf("expected OCRTimeout=5m, got %s", cfg.OCRTimeout)
	}
	if cfg.PdftotextBin != "pdftotext" {
		t.Errorf("expected pdftotext, got %q", cfg.PdftotextBin)
	}
	if cfg.InspectTimeout != 30*time.Second {
		t.Errorf("expected InspectTimeout=30s, got %s", cfg.InspectTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MIN_CHARS", "250")
	t.Setenv("OCR_LANGUAGES", "eng+deu, fra")
	t.Setenv("ENABLE_EXTERNAL_TOOL", "false")
	t.Setenv("STRUCTURED_TIMEOUT", "15s")
	t.Setenv("INSPECT_TIMEOUT", "2s")
	t.Setenv("WORKER_COUNT", "-3")

	cfg := Load()
	if cfg.MinChars != 250 {
		t.Errorf("expected MinChars=250, got %d", cfg.MinChars)
	}
	if !reflect.DeepEqual(cfg.OCRLanguages, []string{"eng", "deu", "fra"}) {
		t.Errorf("expected [eng deu fra], got %v", cfg.OCRLanguages)
	}
	if cfg.EnableExternalTool {
		t.Error("expected external tool disabled")
	}
	if cfg.StructuredTimeout != 15*time.Second {
		t.Errorf("expected 15s, got %s", cfg.StructuredTimeout)
	}
	if cfg.InspectTimeout != 2*time.Second {
		t.Errorf("expected InspectTimeout=2s, got %s", cfg.InspectTimeout)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected invalid WorkerCount clamped to 4, got %d", cfg.WorkerCount)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OCR_DPI", "lots")
	t.Setenv("OCR_TIMEOUT", "forever")

	cfg := Load()
	if cfg.OCRDPI != 200 {
		t.Errorf("expected fallback DPI=200, got %d", cfg.OCRDPI)
	}
	if cfg.OCRTimeout != 5*time.Minute {
		t.Errorf("expected fallback timeout, got %s", cfg.OCRTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"psm too high", func(c *Config) { c.OCRPSM = 14 }, "OCR_PSM"},
		{"dpi too high", func(c *Config) { c.OCRDPI = 2400 }, "OCR_DPI"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		cfg := Load()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: expected error mentioning %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdftext.yaml")
	yml := `
min_chars: 40
log_level: debug
ocr:
  enabled: false
  languages: [deu, eng]
  timeout: 90s
external_tool:
  bin: /opt/poppler/bin/pdftotext
inspect:
  timeout: 5s
max_parallel: 8
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Load()
	cfg, err := LoadFile(path, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinChars != 40 {
		t.Errorf("expected MinChars=40, got %d", cfg.MinChars)
	}
	if cfg.EnableOCR {
		t.Error("expected OCR disabled")
	}
	if !reflect.DeepEqual(cfg.OCRLanguages, []string{"deu", "eng"}) {
		t.Errorf("expected [deu eng], got %v", cfg.OCRLanguages)
	}
	if cfg.OCRTimeout != 90*time.Second {
		t.Errorf("expected 90s, got %s", cfg.OCRTimeout)
	}
	if cfg.PdftotextBin != "/opt/poppler/bin/pdftotext" {
		t.Errorf("unexpected bin %q", cfg.PdftotextBin)
	}
	if cfg.InspectTimeout != 5*time.Second {
		t.Errorf("expected inspect timeout 5s, got %s", cfg.InspectTimeout)
	}
	if cfg.MaxParallel != 8 {
		t.Errorf("expected MaxParallel=8, got %d", cfg.MaxParallel)
	}
	// Keys absent from the file keep the base value.
	if cfg.OCRDPI != base.OCRDPI || cfg.StructuredTimeout != base.StructuredTimeout {
		t.Error("expected unset keys to keep base values")
	}
}

func TestLoadFile_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ocr:\n  timeout: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(path, Load())
	if err == nil || !strings.Contains(err.Error(), "ocr.timeout") {
		t.Fatalf("expected ocr.timeout error, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/pdftext.yaml", Load()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
