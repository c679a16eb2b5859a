package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrSourceRead marks a file-level failure: the source could not be opened
// or parsed as CSV.
var ErrSourceRead = errors.New("source read failure")

// CSV header columns.
const (
	ColFieldName   = "Field Name"
	ColDataType    = "Data Type"
	ColDescription = "Description"
	ColComments    = "Comments"
	ColMetadata    = "Metadata"
)

const utf8BOM = "\ufeff"

// NewTable derives database and table names from a source path such as
// `db/images/images - processed_images.csv`.
func NewTable(source string) *Table {
	dir, file := filepath.Split(source)
	stem := strings.TrimSuffix(file, filepath.Ext(file))

	t := &Table{
		Database: filepath.Base(filepath.Clean(dir)),
		Source:   source,
		byName:   make(map[string]*Field),
	}
	if parts := strings.Split(stem, "-"); len(parts) > 1 {
		t.Name = strings.TrimSpace(parts[1])
	}
	return t
}

// IsCommonFile reports whether path names a shared field-set file
// (its tab name is in brackets) rather than a table.
func IsCommonFile(path string) bool {
	return strings.Contains(filepath.Base(path), "(")
}

// IncludeFilename builds the sibling file name for an include directive:
// `<dir>/<db prefix> - <label>.csv`.
func IncludeFilename(source, label string) string {
	dir, file := filepath.Split(source)
	prefix := strings.TrimSpace(strings.Split(file, "-")[0])
	return filepath.Join(dir, prefix+" - "+label+".csv")
}

// Loader resolves field-definition files into tables.
type Loader struct {
	log logrus.FieldLogger
}

func NewLoader(log logrus.FieldLogger) *Loader {
	return &Loader{log: log}
}

// Load reads table.Source and every file it includes into table.Fields.
func (l *Loader) Load(table *Table) error {
	if table.byName == nil {
		table.byName = make(map[string]*Field)
	}
	visiting := map[string]bool{}
	_, err := l.loadFile(table, table.Source, IsCommonFile(table.Source), visiting)
	return err
}

func (l *Loader) loadFile(table *Table, path string, common bool, visiting map[string]bool) (int, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if visiting[key] {
		l.log.WithField("file", path).Warn("circular include ignored")
		return 0, nil
	}
	visiting[key] = true
	defer delete(visiting, key)

	logger := l.log.WithField("file", path)
	logger.Debug("load table csv started")

	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		rawName := row[ColFieldName]

		// 빈 행 (스프레드시트 구분선)
		if rawName == "" {
			continue
		}

		// Include directive: common fields from a sibling file
		if strings.Contains(rawName, "(") {
			inc := IncludeFilename(path, rawName)
			if _, err := os.Stat(inc); err != nil {
				continue
			}
			logger.WithField("include", inc).Info("loading include file")
			n, err := l.loadFile(table, inc, true, visiting)
			if err != nil {
				return count, err
			}
			count += n
			continue
		}

		name, pk, idx := ParseMarkers(rawName)
		if name == "" {
			logger.WithField("raw", rawName).Warn("field name is empty after markers, field ignored")
			continue
		}
		f := &Field{
			Name:          name,
			RawType:       row[ColDataType],
			Description:   row[ColDescription],
			Comments:      row[ColComments],
			Metadata:      row[ColMetadata],
			IsPrimaryKey:  pk,
			HasIndex:      idx,
			IsCommonField: common,
		}

		meta, err := ParseMetadata(f.Metadata)
		if err != nil {
			logger.WithField("field", name).Debugf("metadata ignored: %v", err)
		}
		f.IndexMethod = IndexMethod(meta)

		f.SQLType = ResolveType(name, f.RawType)
		if f.SQLType == TypeUnknown {
			logger.WithFields(logrus.Fields{"field": name, "type": f.RawType}).
				Warn("unknown field type, field ignored")
			continue
		}

		if !table.Add(f) {
			logger.WithField("field", name).Warn("field already defined, ignored")
			continue
		}
		count++
	}

	logger.WithField("fields", count).Debug("load table csv done")
	return count, nil
}

// readRows parses a CSV file into header-keyed rows with trimmed values.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceRead, path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceRead, path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
