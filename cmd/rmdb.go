/*
Copyright © 2026 The wkctx authors
*/

// rmdb.go implements the "wkctx rm-db" command for deleting built
// databases. Removal is by logical name; the managed prefix is applied
// the same way the load path applies it.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/naming"
)

func newRmDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-db <name>",
		Short: "Delete a context's built database",
		Long: `Delete the physical database built for a context. The catalog
definition is untouched; the next 'wkctx use' rebuilds from scratch.
Deleting the active context's database also deactivates it.`,
		Args: cobra.ExactArgs(1),
		RunE: runRmDB,
	}
}

func runRmDB(_ *cobra.Command, args []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	name := args[0]
	physical := naming.PhysicalName(name)
	err = wb.Engine.DropDatabase(physical)

	log.Event("cli:rm-db", "drop").
		Context(name).
		Database(physical).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("rm-db %q: %w", name, err))
	}

	// Dropping the active context's database leaves the controller naming
	// a context with no backing store; deactivate it.
	ctrl := wb.Controller(Demo())
	if ctrl.IsLoaded(name) {
		ctrl.Clear()
	}

	if JSON() {
		return PrintJSON(map[string]string{"deleted": physical})
	}
	fmt.Fprintf(Out(), "Deleted database %s\n", physical)
	return nil
}

func init() {
	rootCmd.AddCommand(newRmDBCmd())
}
