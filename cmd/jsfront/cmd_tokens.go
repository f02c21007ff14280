package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/format"
	"github.com/dhamidi/jsfront/js/parser"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a .js file with the lexer context after each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readSource(filename)
			if err != nil {
				return fmt.Errorf("read js file: %w", err)
			}

			p := parser.ParseProgram(bytes.NewReader(data),
				parser.WithFile(filename),
				parser.WithDiagnosticSink(os.Stderr),
			)
			tokens, contexts, err := p.Tokens()
			if err != nil {
				return fmt.Errorf("scan js file: %w", err)
			}
			if err := format.NewTokenEncoder(os.Stdout).Encode(tokens, contexts); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			if n := p.ErrorCount(); n > 0 {
				return fmt.Errorf("scan js file: %d lexical error(s)", n)
			}
			return nil
		},
	}
}
