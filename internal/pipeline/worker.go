package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Worker runs queued jobs through the extraction chain.
type Worker struct {
	extractor Extractor
	jobs      *JobStore
	log       *slog.Logger
}

func NewWorker(ex Extractor, jobs *JobStore, log *slog.Logger) *Worker {
	return &Worker{extractor: ex, jobs: jobs, log: log}
}

// Process extracts one job's document and removes its temp file.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	defer func() {
		if err := job.removeFile(); err != nil {
			log.Warn("remove upload failed", "error", err)
		}
	}()

	job.SetStatus(StatusHashing, "hashing")
	hash, err := FileHashHex(job.Path())
	if err != nil {
		log.Error("hash failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "hashing")
		return
	}
	job.SetContentHash(hash)

	if res, ok := w.jobs.CompletedByHash(hash, job.ID); ok {
		log.Info("duplicate upload, reusing result", "method", res.Method)
		job.Complete(res, "duplicate")
		return
	}

	job.SetStatus(StatusExtracting, "extracting")
	res := w.extractor.Extract(ctx, job.Path())
	for _, a := range res.Attempts {
		if a.Error != "" {
			job.AddError(string(a.Method) + ": " + a.Error)
		}
		for _, f := range a.PageFaults {
			job.AddError(string(a.Method) + ": " + f.String())
		}
	}

	if ctx.Err() != nil && !res.Succeeded {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "cancelled")
		log.Warn("job cancelled", "error", ctx.Err())
		return
	}

	job.Complete(res, "done")
	log.Info("job complete",
		"method", res.Method,
		"succeeded", res.Succeeded,
		"chars", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
