// Package splitter turns a bulk seed script into individually executable
// write statements. Seed scripts are free-form text: standalone insert
// statements, multi-line match…insert blocks, comments, and blank lines.
// The engine accepts one statement at a time, so the script must be cut at
// statement boundaries before loading.
package splitter

import "strings"

const (
	writeKeyword    = "insert"
	compoundKeyword = "match"
	commentMarker   = "#"
	terminator      = ";"
)

// Split cuts a seed script into an ordered list of executable statements.
//
// The scan is line-oriented, single pass, no backtracking:
//
//   - A line starting with "insert" (outside a match block) flushes the
//     pending statement and starts a new one.
//   - A line starting with "match" always flushes and opens a compound
//     block. The block is opaque until a line ends with ";" and the
//     accumulated text already contains "insert" - that closes the block.
//   - Comment lines between statements are dropped. Inside an open match
//     block they are kept verbatim as part of the statement.
//   - Blank lines are never appended.
//
// A standalone insert is only recognised when it begins a line; hand-authored
// seed scripts separate consecutive standalone statements accordingly. Do not
// tighten this boundary rule - existing seed content is written against it.
//
// Output order equals input order. Split is pure and deterministic.
func Split(script string) []string {
	var statements []string
	var pending []string
	inCompound := false

	flush := func() {
		if len(pending) == 0 {
			return
		}
		stmt := strings.TrimSpace(strings.Join(pending, "\n"))
		pending = pending[:0]
		// Defensive: an accumulator that reduced to nothing, or to a bare
		// comment, is not a statement.
		if stmt == "" || strings.HasPrefix(stmt, commentMarker) {
			return
		}
		statements = append(statements, stmt)
	}

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, commentMarker) && !inCompound {
			continue
		}
		if strings.HasPrefix(trimmed, writeKeyword) && !inCompound {
			flush()
		}
		if strings.HasPrefix(trimmed, compoundKeyword) {
			flush()
			inCompound = true
		}
		if trimmed != "" {
			pending = append(pending, line)
		}
		// The compound block ends once its insert clause has been reached
		// and terminated.
		if inCompound && strings.HasSuffix(trimmed, terminator) &&
			strings.Contains(strings.Join(pending, "\n"), writeKeyword) {
			inCompound = false
		}
	}
	flush()

	return statements
}
