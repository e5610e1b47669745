package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/parser"
	"github.com/dgallion1/pdfcascade/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

var (
	errNotPDF   = errors.New("only .pdf uploads are accepted")
	errTooLarge = errors.New("file exceeds max size")
)

// extractResponse is one document's outcome in the API.
type extractResponse struct {
	Filename string `json:"filename"`
	extract.Result
}

type batchItem struct {
	Filename string          `json:"filename"`
	Result   *extract.Result `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}

	filename, path, err := s.saveUpload(fhs[0])
	if err != nil {
		uploadError(w, filename, err)
		return
	}
	defer os.Remove(path)

	res := s.extractor.Extract(r.Context(), path)
	writeJSON(w, http.StatusOK, extractResponse{Filename: filename, Result: res})
}

func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	items := make([]batchItem, len(files))
	var paths []string
	var slots []int
	for i, fh := range files {
		filename, path, err := s.saveUpload(fh)
		items[i].Filename = filename
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		defer os.Remove(path)
		paths = append(paths, path)
		slots = append(slots, i)
	}

	results := pipeline.ExtractBatch(r.Context(), s.extractor, paths, s.cfg.MaxParallel)
	for j, res := range results {
		items[slots[j]].Result = &res
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	if s.pool == nil {
		jsonError(w, "job queue unavailable", http.StatusServiceUnavailable)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}

	filename, path, err := s.saveUpload(fhs[0])
	if err != nil {
		uploadError(w, filename, err)
		return
	}

	// The job owns path from here on and removes it when done.
	job := pipeline.NewJob(filename, path)
	if err := s.pool.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if s.pool == nil {
		jsonError(w, "job queue unavailable", http.StatusServiceUnavailable)
		return
	}
	job := s.pool.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// saveUpload copies one multipart file to a temp file and returns the
// sanitized filename and the temp path. The caller removes the file.
func (s *Server) saveUpload(fh *multipart.FileHeader) (string, string, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsPDF(filename) {
		return filename, "", fmt.Errorf("%w: %s", errNotPDF, filepath.Ext(filename))
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return filename, "", fmt.Errorf("%w (%d bytes)", errTooLarge, s.cfg.MaxUploadBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return filename, "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "pdfcascade-*.pdf")
	if err != nil {
		return filename, "", fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxUploadBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.cfg.MaxUploadBytes {
		err = fmt.Errorf("%w (%d bytes)", errTooLarge, s.cfg.MaxUploadBytes)
	}
	if err != nil {
		os.Remove(dst.Name())
		return filename, "", err
	}
	return filename, dst.Name(), nil
}

func uploadError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, errNotPDF):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errTooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		jsonError(w, fmt.Sprintf("failed to store %s", filename), http.StatusInternalServerError)
	}
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
