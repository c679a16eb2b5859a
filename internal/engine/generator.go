package engine

import (
	"strings"

	"sheet2sql/internal/dialect"
	"sheet2sql/internal/schema"
)

// RenderOptions selects the optional statements of a schema block.
type RenderOptions struct {
	Statistics       bool
	StatisticsTarget int
	Owner            bool
	OwnerRole        string
}

const defaultOwnerRole = "postgres"

// Render returns the schema block for table: header comment, CREATE TABLE,
// statistics targets, indexes and ownership. Output depends only on its
// inputs.
func Render(d dialect.Dialect, table *schema.Table, opts RenderOptions) string {
	var b strings.Builder

	b.WriteString("--\n")
	b.WriteString("-- Automatic Generated Table Definition\n")
	b.WriteString("-- Source file: " + table.Source + "\n")
	b.WriteString("--\n")
	b.WriteString("\n")

	b.WriteString(d.CreateTableQuery(table))
	b.WriteString("\n\n")

	// SET STATISTICS
	if opts.Statistics {
		for _, f := range table.Fields {
			b.WriteString(d.StatisticsQuery(table.Name, f.Name, opts.StatisticsTarget))
			b.WriteString("\n\n")
		}
	}

	for _, f := range table.Fields {
		if f.HasIndex {
			b.WriteString(d.CreateIndexQuery(table.Name, f))
			b.WriteString("\n\n")
		}
	}

	if opts.Owner {
		role := opts.OwnerRole
		if role == "" {
			role = defaultOwnerRole
		}
		b.WriteString(d.OwnerQuery(table.Name, role))
		b.WriteString("\n")
	}

	return b.String()
}
