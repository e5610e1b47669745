package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth; empty disables bearer auth on the API.
	APIKey string

	// Quality gate
	MinChars int

	// OCR
	EnableOCR    bool
	OCRDPI       int
	OCRLanguages []string
	OCRPSM       int

	// External tool
	EnableExternalTool bool
	PdftotextBin       string

	// Per-method time limits
	StructuredTimeout   time.Duration
	OCRTimeout          time.Duration
	ExternalToolTimeout time.Duration
	InspectTimeout      time.Duration

	// Worker pool and batch extraction
	WorkerCount  int
	MaxQueueSize int
	MaxParallel  int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	LogLevel string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PDFTEXT_API_KEY"),

		MinChars: envInt("MIN_CHARS", 100),

		EnableOCR:    envBool("ENABLE_OCR", true),
		OCRDPI:       envInt("OCR_DPI", 200),
		OCRLanguages: envList("OCR_LANGUAGES", []string{"eng"}),
		OCRPSM:       envInt("OCR_PSM", 0),

		EnableExternalTool: envBool("ENABLE_EXTERNAL_TOOL", true),
		PdftotextBin:       envOr("PDFTOTEXT_BIN", "pdftotext"),

		StructuredTimeout:   envDuration("STRUCTURED_TIMEOUT", 60*time.Second),
		OCRTimeout:          envDuration("OCR_TIMEOUT", 5*time.Minute),
		ExternalToolTimeout: envDuration("EXTERNAL_TOOL_TIMEOUT", 2*time.Minute),
		InspectTimeout:      envDuration("INSPECT_TIMEOUT", 30*time.Second),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		MaxParallel:  envInt("MAX_PARALLEL", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		LogLevel: envOr("LOG_LEVEL", "info"),
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults replaces out-of-range values with the defaults.
func (c *Config) applyDefaults() {
	if c.MinChars < 0 {
		c.MinChars = 100
	}
	if c.OCRDPI <= 0 {
		c.OCRDPI = 200
	}
	if len(c.OCRLanguages) == 0 {
		c.OCRLanguages = []string{"eng"}
	}
	if c.PdftotextBin == "" {
		c.PdftotextBin = "pdftotext"
	}
	if c.StructuredTimeout <= 0 {
		c.StructuredTimeout = 60 * time.Second
	}
	if c.OCRTimeout <= 0 {
		c.OCRTimeout = 5 * time.Minute
	}
	if c.ExternalToolTimeout <= 0 {
		c.ExternalToolTimeout = 2 * time.Minute
	}
	if c.InspectTimeout <= 0 {
		c.InspectTimeout = 30 * time.Second
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = 4
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 52428800
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c Config) Validate() error {
	if c.OCRPSM < 0 || c.OCRPSM > 13 {
		return fmt.Errorf("OCR_PSM must be between 0 and 13, got %d", c.OCRPSM)
	}
	if c.OCRDPI > 1200 {
		return fmt.Errorf("OCR_DPI must be at most 1200, got %d", c.OCRDPI)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level; unknown values log at info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma- or plus-separated value, e.g. "eng+deu".
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '+' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
