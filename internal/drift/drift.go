// Package drift reports divergence between the schema a catalog defines for
// a context and the schema actually recorded in its physical database.
// A context loaded long ago can drift when the catalog content moves on;
// the report tells the user whether a reset is worth it.
package drift

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds a drift report.
type Result struct {
	Applied string // label of the applied (database) side
	Catalog string // label of the catalog side
	Diff    string // plain diff text, empty when the schemas match
}

// InSync reports whether the applied schema matches the catalog schema.
func (r Result) InSync() bool {
	return r.Diff == ""
}

// Compute returns a drift report between the schema recorded in the
// database and the schema the catalog currently defines.
func Compute(appliedSchema, catalogSchema, appliedLabel, catalogLabel string) Result {
	r := Result{Applied: appliedLabel, Catalog: catalogLabel}
	if appliedSchema == catalogSchema {
		return r
	}

	dmp := diffmatchpatch.New()
	d := dmp.DiffMain(appliedSchema, catalogSchema, false)
	d = dmp.DiffCleanupSemantic(d)
	r.Diff = format(d)
	return r
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to drift output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full report with header. A report with no drift
// formats as a single in-sync line.
func (r Result) Format(colour bool) string {
	if r.InSync() {
		return fmt.Sprintf("%s matches %s\n", r.Applied, r.Catalog)
	}
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Applied, r.Catalog)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
