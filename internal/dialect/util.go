package dialect

import (
	"strings"
)

// JoinColumns is a helper that joins column names with a separator, skipping blanks.
func JoinColumns(cols []string, sep string) string {
	var out []string
	for _, c := range cols {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, sep)
}

// DefaultIndexName is a default implementation for index naming: <table>_idx_<column>.
func DefaultIndexName(table, column string) string {
	return table + "_idx_" + column
}
