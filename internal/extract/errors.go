package extract

import (
	"errors"
	"fmt"
)

// ErrTimeout is the cause recorded when a method exceeds its time budget.
var ErrTimeout = errors.New("method timed out")

// ExtractionError reports that a whole method failed for a document.
type ExtractionError struct {
	Method MethodTag
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction error: %v", e.Method, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// PageFault records a single page that contributed no text.
type PageFault struct {
	Page  int    `json:"page"`
	Error string `json:"error"`
}

func (f PageFault) String() string {
	return fmt.Sprintf("page %d: %s", f.Page, f.Error)
}
