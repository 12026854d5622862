// Package naming maps logical context names to physical database names and
// back. The mapping is deterministic and collision-free over the expected
// alphabet for context names: lowercase letters, digits, and hyphens.
package naming

import "strings"

// Prefix marks a physical database as managed by wkctx.
const Prefix = "wkctx_"

// PhysicalName returns the physical database name for a logical context
// name: the managed prefix plus the name with hyphens mapped to underscores.
func PhysicalName(logical string) string {
	return Prefix + strings.ReplaceAll(logical, "-", "_")
}

// IsManaged reports whether a physical database name belongs to the wkctx
// namespace.
func IsManaged(physical string) bool {
	return strings.HasPrefix(physical, Prefix)
}

// LogicalName inverts PhysicalName. The second return value is false when
// the name is not in the managed namespace.
//
// The inverse maps underscores back to hyphens, so it is lossy for a logical
// name that itself contains an underscore. No shipped catalog uses one;
// catalogs supplying such names should not rely on round-tripping.
func LogicalName(physical string) (string, bool) {
	rest, ok := strings.CutPrefix(physical, Prefix)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(rest, "_", "-"), true
}
