package main

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/pdfcascade/internal/config"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand.
type options struct {
	configFile     string
	minChars       int
	noOCR          bool
	noExternalTool bool
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "pdftext",
		Short: "Extract plain text from PDF files",
		Long: `pdftext tries the cheapest extraction method first and escalates to
more expensive ones (OCR, then the pdftotext tool) only when the text found so
far does not look like real content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "YAML config file layered over environment settings")
	pf.IntVar(&opts.minChars, "min-chars", -1, "Non-whitespace characters a method must exceed to be accepted")
	pf.BoolVar(&opts.noOCR, "no-ocr", false, "Skip the OCR step")
	pf.BoolVar(&opts.noExternalTool, "no-external-tool", false, "Skip the pdftotext step")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log each extraction step")

	root.AddCommand(newExtractCmd(opts), newMethodsCmd(opts))
	return root
}

// load resolves configuration: environment, then config file, then flags.
func (o *options) load() (config.Config, error) {
	cfg := config.Load()
	if o.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(o.configFile, cfg); err != nil {
			return config.Config{}, err
		}
	}
	if o.minChars >= 0 {
		cfg.MinChars = o.minChars
	}
	if o.noOCR {
		cfg.EnableOCR = false
	}
	if o.noExternalTool {
		cfg.EnableExternalTool = false
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
