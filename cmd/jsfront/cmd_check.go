package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/js/codebase"
)

type checkOptions struct {
	exts      []string
	cacheSize int
	maxNodes  int
	debug     bool
}

func (o *checkOptions) codebaseOptions() []codebase.Option {
	opts := []codebase.Option{
		codebase.WithCacheSize(o.cacheSize),
		codebase.WithMaxNodes(o.maxNodes),
	}
	if len(o.exts) > 0 {
		opts = append(opts, codebase.WithExtensions(o.exts...))
	}
	if o.debug {
		opts = append(opts, codebase.WithDebug())
	}
	return opts
}

func (o *checkOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.exts, "ext", nil, "file extensions to check (default .js, .mjs, .cjs)")
	cmd.Flags().IntVar(&o.cacheSize, "cache-size", 256, "number of parse results to keep")
	cmd.Flags().IntVar(&o.maxNodes, "max-nodes", 0, "node limit per file (0 means no limit)")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "report inserted semicolons and brace classifications")
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check .js files and directories for syntax errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runCheck(cmd.OutOrStdout(), args, &opts)
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func runCheck(out io.Writer, paths []string, opts *checkOptions) error {
	cb, err := codebase.New(".", opts.codebaseOptions()...)
	if err != nil {
		return fmt.Errorf("create codebase: %w", err)
	}
	for _, path := range paths {
		if err := cb.Scan(path); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
	}

	failed := 0
	files := cb.Files()
	for _, f := range files {
		printDiagnostics(out, f)
		if f.Failed() {
			failed++
		}
	}

	fmt.Fprintf(out, "%d file(s) checked, %d with errors, %d error(s)\n", len(files), failed, cb.ErrorCount())
	if failed > 0 {
		return fmt.Errorf("check: %d file(s) with errors", failed)
	}
	return nil
}

// printDiagnostics writes the diagnostics of f, one per line. A node budget
// overrun is among them as a FATAL diagnostic.
func printDiagnostics(out io.Writer, f *codebase.FileInfo) {
	for _, d := range f.Diagnostics {
		fmt.Fprintln(out, d.String())
	}
}
