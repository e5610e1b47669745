package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/pdfcascade/internal/pdfinfo"
)

// Inspector reads document-level facts used only for diagnostics.
type Inspector func(ctx context.Context, path string) (*pdfinfo.Info, error)

// Orchestrator runs extraction methods in priority order and stops at the
// first one whose output passes the gate.
type Orchestrator struct {
	methods []Method
	gate    Gate
	inspect Inspector
	// inspectTimeout bounds the inspector; zero means no limit.
	inspectTimeout time.Duration
	stats          *Stats
	log     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithInspector attaches document info to every result. The inspector is
// abandoned after timeout so it never delays the first method for longer.
func WithInspector(fn Inspector, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.inspect = fn
		o.inspectTimeout = timeout
	}
}

// WithStats records per-method latency into s.
func WithStats(s *Stats) Option {
	return func(o *Orchestrator) { o.stats = s }
}

// NewOrchestrator creates an orchestrator over methods, cheapest first.
func NewOrchestrator(methods []Method, gate Gate, log *slog.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	o := &Orchestrator{
		methods: append([]Method(nil), methods...),
		gate:    gate,
		log:     log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Methods returns the escalation order.
func (o *Orchestrator) Methods() []MethodTag {
	tags := make([]MethodTag, len(o.methods))
	for i, m := range o.methods {
		tags[i] = m.Tag
	}
	return tags
}

// Stats returns the latency recorder, or nil if none was configured.
func (o *Orchestrator) Stats() *Stats {
	return o.stats
}

// Extract returns the best available text for the PDF at path. It never
// fails: method errors are recorded in the attempts and the worst outcome
// is a result tagged MethodNone.
func (o *Orchestrator) Extract(ctx context.Context, path string) Result {
	log := o.log.With("path", path)
	res := Result{Method: MethodNone}

	if o.inspect != nil {
		info, err := o.runInspect(ctx, path)
		if err != nil {
			log.Debug("inspect failed", "error", err)
		} else {
			res.Info = info
		}
	}

	// Last non-empty candidate, kept in case nothing passes the gate.
	var fallback string

	for _, m := range o.methods {
		if err := ctx.Err(); err != nil {
			log.Warn("extraction cancelled", "next_method", m.Tag, "error", err)
			break
		}

		start := time.Now()
		out, err := o.run(ctx, m, path)
		elapsed := time.Since(start)
		if o.stats != nil {
			o.stats.Record(m.Tag, elapsed.Milliseconds())
		}

		att := Attempt{
			Method:     m.Tag,
			PageFaults: out.Faults,
			DurationMs: elapsed.Milliseconds(),
		}
		if err != nil {
			att.Error = err.Error()
			out.Text = ""
			log.Warn("method failed", "method", m.Tag, "error", err, "duration_ms", att.DurationMs)
		}
		if len(out.Faults) > 0 {
			log.Debug("page faults", "method", m.Tag, "count", len(out.Faults))
		}
		att.Chars = CountNonSpace(out.Text)
		att.Passed = o.gate.Meaningful(out.Text)
		res.Attempts = append(res.Attempts, att)

		if att.Passed {
			res.Text = out.Text
			res.Method = m.Tag
			res.Succeeded = true
			log.Info("text extracted", "method", m.Tag, "chars", att.Chars, "duration_ms", att.DurationMs)
			return res
		}
		if strings.TrimSpace(out.Text) != "" {
			fallback = out.Text
		}
		log.Info("escalating", "method", m.Tag, "chars", att.Chars, "min_chars", o.gate.MinChars)
	}

	if fallback == "" {
		fallback = NoTextMessage
	}
	res.Text = fallback
	log.Warn("no method produced meaningful text", "attempts", len(res.Attempts))
	return res
}

// run executes one method under its timeout. The method runs in its own
// goroutine so a backend that ignores the context cannot hold the chain;
// it still releases its own resources when it returns.
func (o *Orchestrator) run(ctx context.Context, m Method, path string) (Output, error) {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	type outcome struct {
		out Output
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out, err := m.Extract(ctx, path)
		done <- outcome{out: out, err: err}
	}()

	select {
	case oc := <-done:
		if oc.err == nil {
			return oc.out, nil
		}
		if ctx.Err() == nil {
			return oc.out, asExtractionError(m.Tag, oc.err)
		}
	case <-ctx.Done():
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		cause := ErrTimeout
		if m.Timeout > 0 {
			cause = fmt.Errorf("%w after %s", ErrTimeout, m.Timeout)
		}
		return Output{}, &ExtractionError{Method: m.Tag, Cause: cause}
	}
	return Output{}, &ExtractionError{Method: m.Tag, Cause: ctx.Err()}
}

// runInspect runs the inspector like run runs a method: in its own
// goroutine, under inspectTimeout, with panics turned into errors.
func (o *Orchestrator) runInspect(ctx context.Context, path string) (*pdfinfo.Info, error) {
	if o.inspectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.inspectTimeout)
		defer cancel()
	}

	type outcome struct {
		info *pdfinfo.Info
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("inspect panic: %v", r)}
			}
		}()
		info, err := o.inspect(ctx, path)
		done <- outcome{info: info, err: err}
	}()

	select {
	case oc := <-done:
		return oc.info, oc.err
	case <-ctx.Done():
		return nil, fmt.Errorf("inspect: %w", ctx.Err())
	}
}

func asExtractionError(tag MethodTag, err error) error {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return err
	}
	return &ExtractionError{Method: tag, Cause: err}
}
