/*
Copyright © 2026 The wkctx authors
*/

// drift.go implements the "wkctx drift" command, comparing the schema a
// database was built with against the schema its catalog defines now.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wkctx/wkctx/internal/log"
)

func newDriftCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "drift [name]",
		Short: "Compare a built database's schema with its catalog definition",
		Long: `Show whether a context's database was built from the schema the
catalog currently defines.

  wkctx drift                  # check the current context
  wkctx drift social-network   # check a specific context

A context whose catalog definition changed after it was built is stale;
'wkctx reset' (or 'wkctx load') realigns it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDrift,
	}
	c.Flags().Bool("no-colour", false, "Disable ANSI colour in the diff")
	return c
}

func runDrift(c *cobra.Command, args []string) error {
	noColour, _ := c.Flags().GetBool("no-colour")

	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	res, err := wb.DriftReport(c.Context(), Demo(), name)

	log.Event("cli:drift", "report").
		Context(name).
		Detail("demo", Demo()).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("drift: %w", err))
	}

	if JSON() {
		return PrintJSON(map[string]any{
			"applied": res.Applied,
			"catalog": res.Catalog,
			"in_sync": res.InSync(),
			"diff":    res.Diff,
		})
	}

	colour := !noColour && term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(Out(), res.Format(colour))
	return nil
}

func init() {
	rootCmd.AddCommand(newDriftCmd())
}
