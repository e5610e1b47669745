package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pdfcascade/internal/config"
)

// ErrPoolStopped is returned by Submit after Stop.
var ErrPoolStopped = errors.New("job pool is stopped")

// Pool runs extraction jobs asynchronously on a fixed set of workers.
type Pool struct {
	jobs      *JobStore
	queue     chan *Job
	extractor Extractor
	log       *slog.Logger
	workers   int
	queueSize int

	mu      sync.RWMutex
	stopped bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPool creates the pool. Call Start before submitting jobs.
func NewPool(cfg config.Config, ex Extractor, log *slog.Logger) *Pool {
	return &Pool{
		jobs:      NewJobStore(cfg.JobTTL),
		queue:     make(chan *Job, cfg.MaxQueueSize),
		extractor: ex,
		log:       log,
		workers:   cfg.WorkerCount,
		queueSize: cfg.MaxQueueSize,
	}
}

// Start launches worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for range p.workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w := NewWorker(p.extractor, p.jobs, p.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-p.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				p.jobs.Cleanup()
			}
		}
	}()
}

// Stop cancels running jobs, waits for the workers and fails whatever
// was still queued, removing its temp files.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	for job := range p.queue {
		job.AddError(ErrPoolStopped.Error())
		job.SetStatus(StatusFailed, "shutdown")
		if err := job.removeFile(); err != nil {
			p.log.Warn("remove upload failed", "job_id", job.ID, "error", err)
		}
	}
}

// Submit queues a new job for processing. A rejected job is still
// registered so its failure can be polled, and its temp file is removed.
func (p *Pool) Submit(job *Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	p.jobs.Put(job)
	if p.stopped {
		job.SetStatus(StatusFailed, "shutdown")
		_ = job.removeFile()
		return ErrPoolStopped
	}
	select {
	case p.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		_ = job.removeFile()
		return fmt.Errorf("job queue is full (%d)", p.queueSize)
	}
}

// GetJob returns a job by ID.
func (p *Pool) GetJob(id string) *Job {
	return p.jobs.Get(id)
}

// JobCount returns the number of jobs still held, finished or not.
func (p *Pool) JobCount() int {
	return p.jobs.Len()
}

// QueueDepth returns current queue depth.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}
