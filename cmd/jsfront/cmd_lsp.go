package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/js/codebase"
)

func newLSPCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, opts.codebaseOptions()...)
			return server.RunStdio()
		},
	}
	opts.addFlags(cmd)

	return cmd
}
