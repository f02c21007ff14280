package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsfront/js/codebase"
)

func newWatchCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Check a directory and re-check files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cb, err := codebase.New(dir, opts.codebaseOptions()...)
			if err != nil {
				return fmt.Errorf("create codebase: %w", err)
			}
			watcher, err := codebase.NewFileWatcher(cb)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			out := cmd.OutOrStdout()
			watcher.OnChange = func(path string, file *codebase.FileInfo) {
				if file == nil {
					fmt.Fprintf(out, "%s: removed\n", path)
					return
				}
				printDiagnostics(out, file)
				if !file.Failed() {
					fmt.Fprintf(out, "%s: ok\n", path)
				}
			}

			if err := watcher.Start(); err != nil {
				watcher.Stop()
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			defer watcher.Stop()

			for _, f := range cb.Files() {
				printDiagnostics(out, f)
			}
			fmt.Fprintf(out, "watching %s: %d file(s), %d error(s)\n", dir, len(cb.Files()), cb.ErrorCount())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	opts.addFlags(cmd)

	return cmd
}
