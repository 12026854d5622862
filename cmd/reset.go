/*
Copyright © 2026 The wkctx authors
*/

// reset.go implements the "wkctx reset" command.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Rebuild the current context from scratch",
		Long: `Rebuild the current context's database from its catalog definition,
discarding any changes made since the last load. Fails if no context
is active.`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}
}

func runReset(c *cobra.Command, _ []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	ctrl := wb.Controller(Demo())
	name := ctrl.Current()
	err = ctrl.Reset(c.Context())

	log.Event("cli:reset", "reset").
		Context(name).
		Detail("demo", Demo()).
		Write(err)

	if err != nil {
		return PrintJSONError(err)
	}
	if JSON() {
		return PrintJSON(ctrl.Status())
	}
	fmt.Fprintf(Out(), "Context %q rebuilt\n", name)
	return nil
}

func init() {
	rootCmd.AddCommand(newResetCmd())
}
