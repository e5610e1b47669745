package extract

import (
	"context"
	"fmt"
	"strings"
)

// Output is what a method hands back to the orchestrator.
type Output struct {
	Text   string
	Faults []PageFault
}

// PageFunc extracts the text of one page. Pages are numbered from 1.
type PageFunc func(ctx context.Context, page int) (string, error)

// CollectPages runs fn over pages 1..n in order and joins the non-empty
// results with a newline. A page that errors or panics is recorded as a
// fault and skipped. The context is checked between pages; on cancellation
// the pages collected so far are returned along with the context error.
func CollectPages(ctx context.Context, n int, fn PageFunc) (Output, error) {
	var out Output
	parts := make([]string, 0, n)
	for page := 1; page <= n; page++ {
		if err := ctx.Err(); err != nil {
			out.Text = strings.Join(parts, "\n")
			return out, err
		}
		text, err := safePage(ctx, page, fn)
		if err != nil {
			out.Faults = append(out.Faults, PageFault{Page: page, Error: err.Error()})
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	out.Text = strings.Join(parts, "\n")
	return out, nil
}

func safePage(ctx context.Context, page int, fn PageFunc) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, page)
}
