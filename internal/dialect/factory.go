package dialect

import "fmt"

// GetDialect returns the Dialect implementation for the given name.
// schemaName is the namespace tables are created in ("" = dialect default).
func GetDialect(name, schemaName string) (Dialect, error) {
	switch name {
	case "", "postgres", "postgresql":
		return &PostgresDialect{Schema: schemaName}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", name)
	}
}

// Ensure interface implementation
var _ Dialect = (*PostgresDialect)(nil)
