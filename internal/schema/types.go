package schema

import "strings"

// HTMPrefix marks Hierarchical Triangular Mesh identifier columns.
const HTMPrefix = "HTM_ID"

var typeMap = map[string]SQLType{
	"int8":   TypeInteger,
	"int16":  TypeInteger,
	"int32":  TypeInteger,
	"int64":  TypeBigint,
	"single": TypeDouble,
	"double": TypeDouble,
	"bool":   TypeBoolean,
	"string": TypeVarchar,
	"text":   TypeVarchar,
	"uuid":   TypeVarchar,
}

const enumPrefix = "enumeration:"

// NormalizeTypeLabel reduces a free-text type label to its lookup key.
func NormalizeTypeLabel(raw string) string {
	t := strings.TrimSpace(raw)
	if len(t) >= len(enumPrefix) && strings.EqualFold(t[:len(enumPrefix)], enumPrefix) {
		t = t[len(enumPrefix):]
	}
	parts := strings.Fields(t)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[0])
}

// ResolveType maps a raw type label to its SQL type. HTM identifier columns
// are always VARCHAR.
func ResolveType(fieldName, raw string) SQLType {
	if t, ok := typeMap[NormalizeTypeLabel(raw)]; ok {
		return t
	}
	if strings.HasPrefix(fieldName, HTMPrefix) {
		return TypeVarchar
	}
	return TypeUnknown
}

// ParseMarkers strips the "**" (primary key) and "*" (index) markers from a
// source field name.
func ParseMarkers(raw string) (name string, primaryKey, index bool) {
	name = raw
	if strings.Contains(name, "**") {
		name = strings.ReplaceAll(name, "**", "")
		primaryKey = true
	}
	if strings.Contains(name, "*") {
		name = strings.ReplaceAll(name, "*", "")
		index = true
	}
	return strings.TrimSpace(name), primaryKey, index
}
