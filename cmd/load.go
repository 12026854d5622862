/*
Copyright © 2026 The wkctx authors
*/

// load.go implements the "wkctx load" command for building contexts.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Build a context's database and make it active",
		Long: `Build a context from its catalog definition and make it active.

  wkctx load social-network
  wkctx load flight-routes --demo

The database is created fresh, the schema applied, and the seed data
inserted. Seed statements that fail are reported and skipped; the load
still completes. Loading the context that is already active and healthy
is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}
}

func runLoad(c *cobra.Command, args []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	name := args[0]
	ctrl := wb.Controller(Demo())
	err = ctrl.Load(c.Context(), name)

	log.Event("cli:load", "load").
		Context(name).
		Detail("demo", Demo()).
		Write(err)

	if err != nil {
		return PrintJSONError(err)
	}
	if JSON() {
		return PrintJSON(ctrl.Status())
	}
	fmt.Fprintf(Out(), "Context %q loaded\n", name)
	return nil
}

func init() {
	rootCmd.AddCommand(newLoadCmd())
}
