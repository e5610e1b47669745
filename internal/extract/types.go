package extract

import (
	"context"
	"time"

	"github.com/dgallion1/pdfcascade/internal/pdfinfo"
)

// MethodTag names the extraction method that produced a result.
type MethodTag string

const (
	MethodStructuredA  MethodTag = "structured_a"
	MethodStructuredB  MethodTag = "structured_b"
	MethodOCR          MethodTag = "ocr"
	MethodExternalTool MethodTag = "external_tool"
	MethodNone         MethodTag = "none"
)

// NoTextMessage is returned when every method produced empty output.
const NoTextMessage = "Could not extract text from this PDF."

// Func extracts the full text of the PDF at path.
type Func func(ctx context.Context, path string) (Output, error)

// Method is one step of the escalation chain.
type Method struct {
	Tag     MethodTag
	Timeout time.Duration // zero means no per-method limit
	Extract Func
}

// Attempt records what a single method did for one document.
type Attempt struct {
	Method     MethodTag   `json:"method"`
	Chars      int         `json:"chars"`
	Passed     bool        `json:"passed"`
	Error      string      `json:"error,omitempty"`
	PageFaults []PageFault `json:"page_faults,omitempty"`
	DurationMs int64       `json:"duration_ms"`
}

// Result is the outcome of running the chain on one document.
type Result struct {
	Text      string        `json:"text"`
	Method    MethodTag     `json:"method"`
	Succeeded bool          `json:"succeeded"`
	Attempts  []Attempt     `json:"attempts"`
	Info      *pdfinfo.Info `json:"info,omitempty"`
}
