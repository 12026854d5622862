/*
Copyright © 2026 The wkctx authors
*/

// use.go implements the "wkctx use" command for switching contexts.
//
// Switching reuses an existing database when one is present; only a
// context that has never been built triggers a full load.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
)

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [name]",
		Short: "Switch to a context, building it only if needed",
		Long: `Switch the active context.

  wkctx use social-network    # switch, reusing the database if built
  wkctx use                   # switch to the configured default_context
  wkctx use flight-routes --demo

If the context's database already exists it is activated without a
rebuild. Use 'wkctx load' to force a full rebuild.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUse,
	}
}

func runUse(c *cobra.Command, args []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		name = wb.Config.DefaultContext
	}
	if name == "" {
		return PrintJSONError(fmt.Errorf("no context named and no default_context configured"))
	}

	ctrl := wb.Controller(Demo())
	err = ctrl.SwitchOrLoad(c.Context(), name)

	log.Event("cli:use", "switch").
		Context(name).
		Detail("demo", Demo()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("use %q: %w", name, err))
	}
	if JSON() {
		return PrintJSON(ctrl.Status())
	}
	fmt.Fprintf(Out(), "Now using context %q\n", name)
	return nil
}

func init() {
	rootCmd.AddCommand(newUseCmd())
}
