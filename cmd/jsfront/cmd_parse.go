package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/format"
	"github.com/dhamidi/jsfront/js/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var debug bool
	var maxNodes int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .js file and dump its syntax tree",
		Long: `Parse a JavaScript file and write its syntax tree to standard output.
Diagnostics are written to standard error. Use - to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readSource(filename)
			if err != nil {
				return fmt.Errorf("read js file: %w", err)
			}

			encoder := format.New(outputFormat, os.Stdout)
			if encoder == nil {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			opts := []parser.Option{
				parser.WithFile(filename),
				parser.WithDiagnosticSink(os.Stderr),
				parser.WithMaxNodes(maxNodes),
			}
			if debug {
				opts = append(opts, parser.WithDebug())
			}
			p := parser.ParseProgram(bytes.NewReader(data), opts...)
			prog, err := p.Finish()
			if err != nil {
				return fmt.Errorf("parse js file: %w", err)
			}

			if debug {
				fmt.Fprintf(os.Stderr, "[DEBUG] %s: %d node(s)\n", filename, p.NodeCount())
			}

			if err := encoder.Encode(prog); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			if n := p.ErrorCount(); n > 0 {
				return fmt.Errorf("parse js file: %d syntax error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&debug, "debug", false, "report inserted semicolons and brace classifications")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "stop parsing after this many nodes (0 means no limit)")

	return cmd
}
