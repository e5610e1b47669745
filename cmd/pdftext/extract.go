package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/pipeline"
	"github.com/spf13/cobra"
)

type fileResult struct {
	File string `json:"file"`
	extract.Result
}

func newExtractCmd(opts *options) *cobra.Command {
	var (
		asJSON   bool
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "extract <file.pdf>...",
		Short: "Extract text from one or more PDF files",
		Example: `  pdftext extract report.pdf
  pdftext extract --json --parallel 8 scans/*.pdf
  pdftext extract --config pdftext.yaml --no-ocr invoice.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("input %s: %w", path, err)
				}
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if parallel <= 0 {
				parallel = cfg.MaxParallel
			}

			ex := pipeline.NewExtractor(cfg, nil, newLogger(cmd, cfg))
			results := pipeline.ExtractBatch(cmd.Context(), ex, args, parallel)

			out := make([]fileResult, len(args))
			for i, res := range results {
				out[i] = fileResult{File: args[i], Result: res}
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return writeText(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results, including per-method attempts, as JSON")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Documents extracted at once (default MAX_PARALLEL)")
	return cmd
}

// writeText prints each document's text. Several documents get a header
// naming the file and the method that produced it.
func writeText(w io.Writer, results []fileResult) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s (%s) <==\n", r.File, r.Method)
		}
		if _, err := fmt.Fprintln(w, r.Text); err != nil {
			return err
		}
	}
	return nil
}
