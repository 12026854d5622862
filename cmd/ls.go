/*
Copyright © 2026 The wkctx authors
*/

// ls.go implements the "wkctx ls" command for listing contexts.
//
// By default it lists the catalog's contexts; --databases lists the
// physical databases actually built on disk instead.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wkctx/wkctx/internal/log"
	"github.com/wkctx/wkctx/internal/naming"
	"github.com/wkctx/wkctx/internal/workbench"
)

func newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List available contexts",
		Long: `List the contexts the selected catalog offers.

  wkctx ls               # lesson contexts
  wkctx ls --demo        # demo contexts
  wkctx ls --databases   # physical databases built on disk`,
		Args: cobra.NoArgs,
		RunE: runLs,
	}
	c.Flags().Bool("databases", false, "List built databases instead of catalog contexts")
	return c
}

func runLs(c *cobra.Command, _ []string) error {
	databases, _ := c.Flags().GetBool("databases")

	wb, err := openWorkbench()
	if err != nil {
		return PrintJSONError(err)
	}
	defer wb.Close()

	if databases {
		return listDatabases(wb)
	}

	ctrl := wb.Controller(Demo())
	cat := wb.Catalog(Demo())
	names := cat.Names()

	log.Event("cli:ls", "list").
		Detail("demo", Demo()).
		Detail("count", len(names)).
		Write(nil)

	if JSON() {
		type item struct {
			Name    string `json:"name"`
			Title   string `json:"title"`
			Current bool   `json:"current"`
		}
		items := make([]item, 0, len(names))
		for _, n := range names {
			def, _ := cat.Get(n)
			items = append(items, item{Name: n, Title: def.Title, Current: ctrl.IsLoaded(n)})
		}
		return PrintJSON(items)
	}

	if len(names) == 0 {
		fmt.Fprintln(Out(), "No contexts in catalog")
		return nil
	}
	for _, n := range names {
		marker := "  "
		if ctrl.IsLoaded(n) {
			marker = "* "
		}
		def, _ := cat.Get(n)
		fmt.Fprintf(Out(), "%s%-20s %s\n", marker, n, def.Title)
	}
	return nil
}

// listDatabases shows the physical databases on disk with their logical
// context names. Databases can outlive catalog entries, so the list is
// driven by the filesystem, not the catalog.
func listDatabases(wb *workbench.Workbench) error {
	physicals, err := wb.Engine.ListDatabases()

	log.Event("cli:ls", "list-databases").
		Detail("count", len(physicals)).
		Write(err)

	if err != nil {
		return PrintJSONError(fmt.Errorf("list databases: %w", err))
	}

	active := wb.Engine.ActiveDatabase()

	if JSON() {
		type item struct {
			Database string `json:"database"`
			Context  string `json:"context"`
			Active   bool   `json:"active"`
		}
		items := make([]item, 0, len(physicals))
		for _, p := range physicals {
			items = append(items, item{Database: p, Context: logicalLabel(p), Active: p == active})
		}
		return PrintJSON(items)
	}

	if len(physicals) == 0 {
		fmt.Fprintln(Out(), "No databases built")
		return nil
	}
	for _, p := range physicals {
		marker := "  "
		if p == active {
			marker = "* "
		}
		fmt.Fprintf(Out(), "%s%-28s %s\n", marker, p, logicalLabel(p))
	}
	return nil
}

// logicalLabel is the context name for a physical database, or the raw
// physical name when it is outside the managed namespace.
func logicalLabel(physical string) string {
	if name, ok := naming.LogicalName(physical); ok {
		return name
	}
	return physical
}

func init() {
	rootCmd.AddCommand(newLsCmd())
}
