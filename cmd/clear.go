/*
Copyright © 2026 The wkctx authors
*/

// clear.go implements the "wkctx clear" command.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Deactivate the current context",
		Long: `Deactivate the current context without touching its database.
The database stays on disk; 'wkctx use' reactivates it instantly.
Clearing when no context is active is a no-op.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}
}

func runClear(_ *cobra.Command, _ []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	ctrl := wb.Controller(Demo())
	name := ctrl.Current()
	ctrl.Clear()
	wb.Engine.SetActiveDatabase("")

	log.Event("cli:clear", "clear").
		Context(name).
		Detail("demo", Demo()).
		Write(nil)

	if JSON() {
		return PrintJSON(ctrl.Status())
	}
	if name == "" {
		fmt.Fprintln(Out(), "No context was active")
	} else {
		fmt.Fprintf(Out(), "Context %q deactivated\n", name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newClearCmd())
}
