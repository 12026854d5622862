/*
Copyright © 2026 The wkctx authors
*/

// status.go implements the "wkctx status" command.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/naming"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current context and its state",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(c *cobra.Command, _ []string) error {
	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	ctrl := wb.Controller(Demo())
	st := ctrl.Status()

	log.Event("cli:status", "status").
		Context(st.Name).
		Detail("demo", Demo()).
		Write(nil)

	if JSON() {
		return PrintJSON(st)
	}

	if st.Name == "" {
		fmt.Fprintln(Out(), "No context active")
		return nil
	}

	fmt.Fprintf(Out(), "Context:  %s\n", st.Name)
	fmt.Fprintf(Out(), "Database: %s\n", naming.PhysicalName(st.Name))
	switch {
	case st.IsLoading:
		fmt.Fprintln(Out(), "State:    loading")
	case st.Error != "":
		fmt.Fprintf(Out(), "State:    failed (%s)\n", st.Error)
	default:
		fmt.Fprintln(Out(), "State:    ready")
	}
	if ts := ctrl.LastLoadedAt(); ts > 0 {
		fmt.Fprintf(Out(), "Loaded:   %s\n", time.Unix(ts, 0).Format(time.RFC3339))
	}
	if cnt, err := wb.Engine.StatementCount(c.Context(), naming.PhysicalName(st.Name)); err == nil {
		fmt.Fprintf(Out(), "Seeded:   %d statements\n", cnt)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newStatusCmd())
}
