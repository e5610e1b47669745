package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/pdfcascade/internal/extract"
)

func TestFileHashHex_KnownDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("hello world"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := FileHashHex(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// SHA-256 of "hello world" is well-known.
	if want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"; got != want {
		t.Errorf("expected hash %q, got %q", want, got)
	}
}

func TestFileHashHex_Missing(t *testing.T) {
	if _, err := FileHashHex(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("report.pdf", "")

	if job.Status != StatusQueued {
		t.Fatalf("expected status %q, got %q", StatusQueued, job.Status)
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusHashing, "hashing"},
		{StatusExtracting, "extracting"},
		{StatusFailed, "cancelled"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_CompleteAndSnapshot(t *testing.T) {
	job := NewJob("report.pdf", "")
	if job.Snapshot().Result != nil {
		t.Fatal("expected snapshot without result before completion")
	}

	job.AddError("structured_a: broken xref")
	job.Complete(extract.Result{Text: "hello", Method: extract.MethodStructuredB, Succeeded: true}, "done")

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if snap.Result == nil || snap.Result.Method != extract.MethodStructuredB {
		t.Fatalf("expected structured_b result in snapshot, got %+v", snap.Result)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "structured_a: broken xref" {
		t.Errorf("expected recorded error, got %v", snap.Errors)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJob_RemoveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	job := NewJob("upload.pdf", path)

	if err := job.removeFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected temp file removed, stat err = %v", err)
	}
	if err := job.removeFile(); err != nil {
		t.Errorf("expected second remove to be a no-op, got %v", err)
	}
	if job.Path() != "" {
		t.Errorf("expected empty path after removal, got %q", job.Path())
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_CompletedByHash(t *testing.T) {
	store := NewJobStore(time.Hour)

	done := NewJob("a.pdf", "")
	done.SetContentHash("abc")
	done.Complete(extract.Result{Text: "cached", Method: extract.MethodOCR, Succeeded: true}, "done")
	store.Put(done)

	pending := NewJob("b.pdf", "")
	pending.SetContentHash("def")
	store.Put(pending)

	res, ok := store.CompletedByHash("abc", "other")
	if !ok || res.Text != "cached" {
		t.Fatalf("expected cached result, got %+v ok=%v", res, ok)
	}
	if _, ok := store.CompletedByHash("abc", done.ID); ok {
		t.Error("expected the excluded job to be skipped")
	}
	if _, ok := store.CompletedByHash("def", "other"); ok {
		t.Error("expected incomplete job not to match")
	}
	if _, ok := store.CompletedByHash("", "other"); ok {
		t.Error("expected empty hash never to match")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Cleanup()
}
