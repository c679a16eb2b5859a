package schema

// SQLType is the storage type a field resolves to.
type SQLType string

const (
	TypeInteger SQLType = "INTEGER"
	TypeBigint  SQLType = "BIGINT"
	TypeDouble  SQLType = "DOUBLE PRECISION"
	TypeBoolean SQLType = "BOOLEAN"
	TypeVarchar SQLType = "VARCHAR"
	TypeUnknown SQLType = "UNKNOWN"
)

const DefaultIndexMethod = "btree"

type Field struct {
	Name          string
	RawType       string
	SQLType       SQLType
	Description   string
	Comments      string
	Metadata      string
	IsPrimaryKey  bool
	HasIndex      bool
	IndexMethod   string
	IsCommonField bool // 공통 필드 파일에서 포함됨
}

type Table struct {
	Database string
	Name     string
	Source   string
	Fields   []*Field

	byName map[string]*Field
}

// Add appends f unless its name is taken. It returns false on duplicates.
func (t *Table) Add(f *Field) bool {
	if t.byName == nil {
		t.byName = make(map[string]*Field)
	}
	if _, ok := t.byName[f.Name]; ok {
		return false
	}
	t.Fields = append(t.Fields, f)
	t.byName[f.Name] = f
	return true
}

// PrimaryKeys returns primary-key field names in field order.
func (t *Table) PrimaryKeys() []string {
	var keys []string
	for _, f := range t.Fields {
		if f.IsPrimaryKey {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// 리포트용 구조체
type TableResult struct {
	Database string
	Table    string
	Source   string
	Output   string
	Fields   int
	Status   string
	ErrorMsg string
}

const (
	StatusOK     = "OK"
	StatusEmpty  = "EMPTY"
	StatusFailed = "FAILED"
)
