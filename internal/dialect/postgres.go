package dialect

import (
	"fmt"
	"strings"

	"sheet2sql/internal/schema"
)

type PostgresDialect struct {
	Schema string
}

// Helper to fix schema name if needed (usually public)
func (d *PostgresDialect) getSchema() string {
	if d.Schema == "" {
		return "public"
	}
	return d.Schema
}

func (d *PostgresDialect) QualifiedName(table string) string {
	return d.getSchema() + "." + table
}

func (d *PostgresDialect) IndexName(table, column string) string {
	return DefaultIndexName(table, column)
}

// CreateTableQuery renders the CREATE TABLE statement. Primary-key columns are
// NOT NULL and collected into a trailing <table>_pkey constraint.
func (d *PostgresDialect) CreateTableQuery(table *schema.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", d.QualifiedName(table.Name))

	pk := table.PrimaryKeys()
	for i, f := range table.Fields {
		def := string(f.SQLType)
		if f.IsPrimaryKey {
			def += " NOT NULL"
		}
		// No trailing comma on the last column when there is no constraint
		if len(pk) > 0 || i < len(table.Fields)-1 {
			def += ","
		}
		fmt.Fprintf(&b, "  %s %s\n", f.Name, def)
	}

	if len(pk) > 0 {
		fmt.Fprintf(&b, "\n  CONSTRAINT %s_pkey PRIMARY KEY(%s)\n", table.Name, JoinColumns(pk, ", "))
	}
	b.WriteString(");")
	return b.String()
}

func (d *PostgresDialect) CreateIndexQuery(table string, field *schema.Field) string {
	method := field.IndexMethod
	if method == "" {
		method = schema.DefaultIndexMethod
	}
	return fmt.Sprintf("CREATE INDEX %s ON %s\n  USING %s (%s);",
		d.IndexName(table, field.Name), d.QualifiedName(table), method, field.Name)
}

func (d *PostgresDialect) StatisticsQuery(table, column string, target int) string {
	return fmt.Sprintf("ALTER TABLE %s\n  ALTER COLUMN %s SET STATISTICS %d;", d.QualifiedName(table), column, target)
}

func (d *PostgresDialect) OwnerQuery(table, role string) string {
	return fmt.Sprintf("ALTER TABLE %s\n  OWNER TO %s;", d.QualifiedName(table), role)
}
