package pipeline

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dgallion1/pdfcascade/internal/extract"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusHashing    JobStatus = "hashing"
	StatusExtracting JobStatus = "extracting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one uploaded document through the extraction chain. The job
// owns the temp file at path and removes it once extraction is over.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	path   string
	result *extract.Result
	errors []string
}

// NewJob creates a queued job for the document stored at path.
func NewJob(filename, path string) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		path:      path,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// CompletedByHash returns the result of a finished job over identical
// content, if one is still held.
func (s *JobStore) CompletedByHash(hash, exceptID string) (extract.Result, bool) {
	if hash == "" {
		return extract.Result{}, false
	}
	s.mu.Lock()
	candidates := make([]*Job, 0, len(s.jobs))
	for id, job := range s.jobs {
		if id != exceptID {
			candidates = append(candidates, job)
		}
	}
	s.mu.Unlock()

	for _, job := range candidates {
		job.mu.Lock()
		match := job.Status == StatusCompleted && job.ContentHash == hash && job.result != nil
		var res extract.Result
		if match {
			res = *job.result
		}
		job.mu.Unlock()
		if match {
			return res, true
		}
	}
	return extract.Result{}, false
}

// Len returns the number of jobs held.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetContentHash records the SHA-256 of the uploaded document.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// Complete stores the extraction result and marks the job completed.
func (j *Job) Complete(res extract.Result, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &res
	j.Status = StatusCompleted
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Path returns the location of the job's temp file.
func (j *Job) Path() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.path
}

// removeFile deletes the job's temp file. Safe to call more than once.
func (j *Job) removeFile() error {
	j.mu.Lock()
	path := j.path
	j.path = ""
	j.mu.Unlock()
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string          `json:"job_id"`
	Status      JobStatus       `json:"status"`
	Phase       string          `json:"phase"`
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash,omitempty"`
	Errors      []string        `json:"errors"`
	Result      *extract.Result `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Errors:      errs,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if j.result != nil {
		res := *j.result
		snap.Result = &res
	}
	return snap
}

// FileHashHex streams the file at path through SHA-256.
func FileHashHex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
