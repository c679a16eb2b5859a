package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sheet2sql/internal/dialect"
	"sheet2sql/internal/schema"

	"github.com/sirupsen/logrus"
)

// ErrOutputOpen is returned when the database output file cannot be opened.
// No further output can be recorded, so callers abort the batch.
var ErrOutputOpen = errors.New("output file open failure")

const (
	TemplateFile        = "create_database.sql"
	DatabaseNameMacro   = "$DatabaseName$"
	outputPrefix        = "__"
	outputExt           = ".sql"
	defaultTemplateRoot = "../.."
)

type EmitterConfig struct {
	OutputRoot     string // "" = next to the source file
	SharedTemplate string // "" = <folder>/../../create_database.sql
	Render         RenderOptions
}

// Emitter appends rendered schema blocks to per-database SQL files.
type Emitter struct {
	d   dialect.Dialect
	cfg EmitterConfig
	log logrus.FieldLogger
}

func NewEmitter(d dialect.Dialect, cfg EmitterConfig, log logrus.FieldLogger) *Emitter {
	return &Emitter{d: d, cfg: cfg, log: log}
}

// OutputPath returns the SQL file the table is appended to.
func (e *Emitter) OutputPath(table *schema.Table) string {
	dir := e.cfg.OutputRoot
	if dir == "" {
		dir = filepath.Dir(table.Source)
	}
	return filepath.Join(dir, outputPrefix+table.Database+outputExt)
}

// Emit appends the schema block for table. Tables without fields are
// skipped without touching the file system.
func (e *Emitter) Emit(table *schema.Table) (string, error) {
	if len(table.Fields) == 0 {
		return "", nil
	}

	path := e.OutputPath(table)
	logger := e.log.WithFields(logrus.Fields{"table": table.Name, "output": path})

	needCreate := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.WithField("database", table.Database).Info("sql output file does not exist, creating new database")
		needCreate = true
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, fmt.Errorf("%w: %s: %v", ErrOutputOpen, path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return path, fmt.Errorf("%w: %s: %v", ErrOutputOpen, path, err)
	}
	defer f.Close()

	w := &flushWriter{f: f}
	if err := w.write("\n"); err != nil {
		return path, err
	}

	if needCreate {
		if err := e.writePreamble(w, table); err != nil {
			return path, err
		}
	}

	logger.WithField("fields", len(table.Fields)).Info("create table started")
	if pk := table.PrimaryKeys(); len(pk) > 0 {
		logger.Debugf("primary key: %v", pk)
	}
	if err := w.write(Render(e.d, table, e.cfg.Render)); err != nil {
		return path, err
	}
	logger.Info("create table done")

	return path, f.Close()
}

// TemplatePath returns the preamble template for the database folder of
// source, or "" when neither the folder nor the shared template exists.
func (e *Emitter) TemplatePath(source string) string {
	dir := filepath.Dir(source)
	local := filepath.Join(dir, TemplateFile)
	if fileExists(local) {
		return local
	}

	shared := e.cfg.SharedTemplate
	if shared == "" {
		shared = filepath.Join(dir, defaultTemplateRoot, TemplateFile)
	}
	if fileExists(shared) {
		return shared
	}
	return ""
}

func (e *Emitter) writePreamble(w *flushWriter, table *schema.Table) error {
	tpl := e.TemplatePath(table.Source)
	if tpl == "" {
		e.log.WithField("database", table.Database).Warn("create_db: database definition file not found")
		return nil
	}

	data, err := os.ReadFile(tpl)
	if err != nil {
		e.log.WithField("template", tpl).Warnf("create_db: cannot read template: %v", err)
		return nil
	}
	e.log.WithField("template", tpl).Info("using database file")

	header := "--\n" +
		"-- Automatic Generated File by sheet2sql\n" +
		"-- Source file: " + tpl + "\n" +
		"--\n" +
		"\n\n\n"
	if err := w.write(header); err != nil {
		return err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.Contains(line, DatabaseNameMacro) {
			line = strings.ReplaceAll(line, DatabaseNameMacro, table.Database)
			e.log.Debugf("replaced %s: %s", DatabaseNameMacro, line)
		}
		if err := w.write(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// flushWriter writes straight through to the file and syncs after every write.
type flushWriter struct {
	f *os.File
}

func (fw *flushWriter) write(s string) error {
	if _, err := fw.f.WriteString(s); err != nil {
		return fmt.Errorf("failed to write %s: %w", fw.f.Name(), err)
	}
	if err := fw.f.Sync(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", fw.f.Name(), err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
