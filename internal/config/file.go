package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of Config. Unset keys leave the base value alone.
type fileConfig struct {
	Port     *string `yaml:"port"`
	MinChars *int    `yaml:"min_chars"`
	LogLevel *string `yaml:"log_level"`

	Structured struct {
		Timeout *string `yaml:"timeout"`
	} `yaml:"structured"`

	Inspect struct {
		Timeout *string `yaml:"timeout"`
	} `yaml:"inspect"`

	OCR struct {
		Enabled   *bool    `yaml:"enabled"`
		DPI       *int     `yaml:"dpi"`
		Languages []string `yaml:"languages"`
		PSM       *int     `yaml:"psm"`
		Timeout   *string  `yaml:"timeout"`
	} `yaml:"ocr"`

	ExternalTool struct {
		Enabled *bool   `yaml:"enabled"`
		Bin     *string `yaml:"bin"`
		Timeout *string `yaml:"timeout"`
	} `yaml:"external_tool"`

	WorkerCount  *int `yaml:"worker_count"`
	MaxQueueSize *int `yaml:"max_queue_size"`
	MaxParallel  *int `yaml:"max_parallel"`
}

// LoadFile overlays the YAML file at path onto base.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := base
	setString(&cfg.Port, fc.Port)
	setInt(&cfg.MinChars, fc.MinChars)
	setString(&cfg.LogLevel, fc.LogLevel)

	setBool(&cfg.EnableOCR, fc.OCR.Enabled)
	setInt(&cfg.OCRDPI, fc.OCR.DPI)
	setInt(&cfg.OCRPSM, fc.OCR.PSM)
	if len(fc.OCR.Languages) > 0 {
		cfg.OCRLanguages = append([]string(nil), fc.OCR.Languages...)
	}

	setBool(&cfg.EnableExternalTool, fc.ExternalTool.Enabled)
	setString(&cfg.PdftotextBin, fc.ExternalTool.Bin)

	setInt(&cfg.WorkerCount, fc.WorkerCount)
	setInt(&cfg.MaxQueueSize, fc.MaxQueueSize)
	setInt(&cfg.MaxParallel, fc.MaxParallel)

	for _, d := range []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"structured.timeout", fc.Structured.Timeout, &cfg.StructuredTimeout},
		{"ocr.timeout", fc.OCR.Timeout, &cfg.OCRTimeout},
		{"external_tool.timeout", fc.ExternalTool.Timeout, &cfg.ExternalToolTimeout},
		{"inspect.timeout", fc.Inspect.Timeout, &cfg.InspectTimeout},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return base, fmt.Errorf("parse config %s: %s: %w", path, d.key, err)
		}
		*d.dst = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
