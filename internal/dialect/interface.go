package dialect

import "sheet2sql/internal/schema"

// Dialect abstracts database-specific DDL rendering.
type Dialect interface {
	// Naming
	QualifiedName(table string) string
	IndexName(table, column string) string

	// Statement Generation
	CreateTableQuery(table *schema.Table) string
	CreateIndexQuery(table string, field *schema.Field) string
	StatisticsQuery(table, column string, target int) string
	OwnerQuery(table, role string) string
}
