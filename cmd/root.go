/*
Copyright © 2026 The wkctx authors
*/
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/ctxctl"
	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/progress"
	"github.com/wkctx/wkctx/internal/workbench"
)

var rootCmd = &cobra.Command{
	Use:   "wkctx",
	Short: "Workspace context manager",
	Long: `wkctx manages named workspace contexts backed by local databases.

A context pairs a schema with seed data from a catalog. Loading a context
materialises its database; switching reuses an existing database when one
is present. Run 'wkctx guide' for a walkthrough.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format %q (valid: json)", output)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// openWorkbench opens the workbench with CLI-appropriate controller
// options: seed skips reported to stderr, progress bars on TTY.
func openWorkbench() (*workbench.Workbench, error) {
	wb, err := workbench.Open(workbench.Options{
		DataDir: Dir(),
		ControllerOptions: []ctxctl.Option{
			ctxctl.WithSeedSkipHandler(func(name, stmt string, err error) {
				if !JSON() {
					fmt.Fprintf(os.Stderr, "warning: seed statement skipped in %q: %v\n", name, err)
				}
			}),
			ctxctl.WithProgress(loadProgress()),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	log.SetWorkspace(wb.Engine.Root())
	return wb, nil
}

// loadProgress adapts the progress bar to the controller's per-statement
// callback. The bar is created lazily on first tick so the total is known.
// No output in JSON mode.
func loadProgress() func(done, total int) {
	var p *progress.Progress
	return func(done, total int) {
		if JSON() {
			return
		}
		if p == nil {
			p = progress.New("Seeding", total)
		}
		p.Set(done)
		if done >= total {
			p.Done()
			p = nil
		}
	}
}
