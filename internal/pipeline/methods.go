package pipeline

import (
	"log/slog"

	"github.com/dgallion1/pdfcascade/internal/config"
	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/ocr"
	"github.com/dgallion1/pdfcascade/internal/ocr/tesseract"
	"github.com/dgallion1/pdfcascade/internal/parser"
	"github.com/dgallion1/pdfcascade/internal/pdfinfo"
	"github.com/dgallion1/pdfcascade/internal/pdftotext"
)

// Methods returns the escalation chain, cheapest first.
func Methods(cfg config.Config) []extract.Method {
	methods := []extract.Method{
		{Tag: extract.MethodStructuredA, Timeout: cfg.StructuredTimeout, Extract: parser.PDFReader{}.Extract},
		{Tag: extract.MethodStructuredB, Timeout: cfg.StructuredTimeout, Extract: parser.FitzReader{}.Extract},
	}

	if cfg.EnableOCR {
		rec := tesseract.New(cfg.OCRLanguages...)
		rec.PSM = cfg.OCRPSM
		rec.DPI = cfg.OCRDPI
		ocrx := &ocr.Extractor{
			Rasterizer: ocr.FitzRasterizer{DPI: float64(cfg.OCRDPI)},
			Recognizer: rec,
		}
		methods = append(methods, extract.Method{Tag: extract.MethodOCR, Timeout: cfg.OCRTimeout, Extract: ocrx.Extract})
	}

	if cfg.EnableExternalTool {
		tool := pdftotext.New(cfg.PdftotextBin)
		methods = append(methods, extract.Method{Tag: extract.MethodExternalTool, Timeout: cfg.ExternalToolTimeout, Extract: tool.Extract})
	}

	return methods
}

// NewExtractor wires the configured chain into an orchestrator.
func NewExtractor(cfg config.Config, stats *extract.Stats, log *slog.Logger) *extract.Orchestrator {
	opts := []extract.Option{extract.WithInspector(pdfinfo.Inspect, cfg.InspectTimeout)}
	if stats != nil {
		opts = append(opts, extract.WithStats(stats))
	}
	return extract.NewOrchestrator(Methods(cfg), extract.Gate{MinChars: cfg.MinChars}, log, opts...)
}
