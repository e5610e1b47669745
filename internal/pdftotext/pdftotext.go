// Package pdftotext extracts text by running the poppler pdftotext utility.
package pdftotext

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/rotisserie/eris"
)

// waitDelay bounds how long Run waits for output pipes after the process
// is killed, in case a child of the tool still holds them.
const waitDelay = 5 * time.Second

// ErrNotInstalled is returned when the binary cannot be found on PATH.
var ErrNotInstalled = errors.New("pdftotext not installed")

// Tool runs `<bin> <input> <output>` and reads the output file.
type Tool struct {
	Bin     string // binary name or path; "pdftotext" if empty
	TempDir string // parent for the scratch directory; os.TempDir() if empty
}

// New creates a Tool. If bin is empty, "pdftotext" is used.
func New(bin string) *Tool {
	if bin == "" {
		bin = "pdftotext"
	}
	return &Tool{Bin: bin}
}

// Available reports whether the binary can be found.
func (t *Tool) Available() bool {
	_, err := exec.LookPath(t.bin())
	return err == nil
}

// Extract converts the PDF at path. The scratch directory holding the output
// file is removed before Extract returns, whatever the outcome.
func (t *Tool) Extract(ctx context.Context, path string) (extract.Output, error) {
	bin, err := exec.LookPath(t.bin())
	if err != nil {
		return extract.Output{}, eris.Wrapf(ErrNotInstalled, "pdftotext: lookup %q", t.bin())
	}

	dir, err := os.MkdirTemp(t.TempDir, "pdfcascade-pdftotext-*")
	if err != nil {
		return extract.Output{}, eris.Wrap(err, "pdftotext: create scratch dir")
	}
	defer os.RemoveAll(dir)

	outPath := filepath.Join(dir, "out.txt")
	cmd := exec.CommandContext(ctx, bin, path, outPath)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		if cmd.ProcessState != nil {
			code = cmd.ProcessState.ExitCode()
		}
		return extract.Output{}, eris.Wrapf(err, "pdftotext: exit %d for %s: %s", code, path, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return extract.Output{}, eris.Wrapf(err, "pdftotext: no output for %s", path)
	}
	return extract.Output{Text: strings.ToValidUTF8(string(data), "�")}, nil
}

func (t *Tool) bin() string {
	if t.Bin == "" {
		return "pdftotext"
	}
	return t.Bin
}
