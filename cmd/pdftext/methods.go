package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/pdftotext"
	"github.com/dgallion1/pdfcascade/internal/pipeline"
	"github.com/spf13/cobra"
)

func newMethodsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the extraction methods in escalation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tMETHOD\tTIMEOUT\tSTATUS")
			for i, m := range pipeline.Methods(cfg) {
				status := "ready"
				if m.Tag == extract.MethodExternalTool && !pdftotext.New(cfg.PdftotextBin).Available() {
					status = fmt.Sprintf("%s not found", cfg.PdftotextBin)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, m.Tag, m.Timeout, status)
			}
			fmt.Fprintf(tw, "\nquality gate: more than %d non-whitespace characters\n", cfg.MinChars)
			return tw.Flush()
		},
	}
}
