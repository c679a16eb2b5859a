package schema_test

import (
	"testing"

	"sheet2sql/internal/schema"
)

func TestResolveType_MappingTable(t *testing.T) {
	cases := map[string]schema.SQLType{
		"int8":                 schema.TypeInteger,
		"int16":                schema.TypeInteger,
		"int32":                schema.TypeInteger,
		"INT32":                schema.TypeInteger,
		"int64":                schema.TypeBigint,
		"single":               schema.TypeDouble,
		"Double":               schema.TypeDouble,
		"bool":                 schema.TypeBoolean,
		"string":               schema.TypeVarchar,
		"text":                 schema.TypeVarchar,
		"uuid":                 schema.TypeVarchar,
		"Enumeration: text":    schema.TypeVarchar,
		"enumeration:int16":    schema.TypeInteger,
		"ENUMERATION: int64":   schema.TypeBigint,
		"int32 (milliseconds)": schema.TypeInteger,
		"  bool  ":             schema.TypeBoolean,
	}

	for raw, want := range cases {
		if got := schema.ResolveType("col", raw); got != want {
			t.Errorf("ResolveType(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestResolveType_Unknown(t *testing.T) {
	for _, raw := range []string{"", "datetime", "date", "float", "Enumeration:"} {
		if got := schema.ResolveType("col", raw); got != schema.TypeUnknown {
			t.Errorf("ResolveType(%q) = %s, want UNKNOWN", raw, got)
		}
	}
}

func TestResolveType_HTMPrefix(t *testing.T) {
	if got := schema.ResolveType("HTM_ID5", "whatever"); got != schema.TypeVarchar {
		t.Errorf("Expected VARCHAR for HTM_ID5, got %s", got)
	}
	// A known type still wins
	if got := schema.ResolveType("HTM_ID5", "int64"); got != schema.TypeBigint {
		t.Errorf("Expected BIGINT for HTM_ID5 int64, got %s", got)
	}
	if got := schema.ResolveType("htm_id5", "whatever"); got != schema.TypeUnknown {
		t.Errorf("Expected prefix match to be case-sensitive, got %s", got)
	}
}

func TestParseMarkers(t *testing.T) {
	cases := []struct {
		raw   string
		name  string
		pk    bool
		index bool
	}{
		{"**id", "id", true, false},
		{"*lookup_key", "lookup_key", false, true},
		{"plain", "plain", false, false},
		{"id**", "id", true, false},
		{"***both", "both", true, true},
	}

	for _, c := range cases {
		name, pk, idx := schema.ParseMarkers(c.raw)
		if name != c.name || pk != c.pk || idx != c.index {
			t.Errorf("ParseMarkers(%q) = (%q, %v, %v), want (%q, %v, %v)",
				c.raw, name, pk, idx, c.name, c.pk, c.index)
		}
	}
}

func TestParseMetadata(t *testing.T) {
	meta, err := schema.ParseMetadata("index_method: gist, note: spatial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := schema.IndexMethod(meta); got != "gist" {
		t.Errorf("Expected gist, got %s", got)
	}

	meta, err = schema.ParseMetadata("index_method: [unterminated")
	if err == nil {
		t.Error("Expected an error for malformed metadata")
	}
	if len(meta) != 0 {
		t.Errorf("Expected empty metadata on error, got %v", meta)
	}
	if got := schema.IndexMethod(meta); got != schema.DefaultIndexMethod {
		t.Errorf("Expected default index method, got %s", got)
	}

	meta, err = schema.ParseMetadata("")
	if err != nil || len(meta) != 0 {
		t.Errorf("Expected empty metadata for blank cell, got %v, %v", meta, err)
	}
}
