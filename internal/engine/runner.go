package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"sheet2sql/internal/schema"
	"sheet2sql/internal/workbook"

	"github.com/sirupsen/logrus"
)

const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// Discover lists files under root with one of exts (case-insensitive), in
// lexical path order.
func Discover(root string, recursive bool, exts ...string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

type RunnerConfig struct {
	Recursive bool
	Workbooks bool // flatten .xlsx files before reading CSVs
}

// Runner processes a folder of field-definition files table by table.
type Runner struct {
	cfg     RunnerConfig
	loader  *schema.Loader
	emitter *Emitter
	log     logrus.FieldLogger
}

func NewRunner(cfg RunnerConfig, loader *schema.Loader, emitter *Emitter, log logrus.FieldLogger) *Runner {
	return &Runner{cfg: cfg, loader: loader, emitter: emitter, log: log}
}

// Tables returns the table source files under root: CSVs that are not
// common field sets.
func (r *Runner) Tables(root string) ([]string, error) {
	files, err := Discover(root, r.cfg.Recursive, ExtCSV)
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, f := range files {
		if !schema.IsCommonFile(f) {
			tables = append(tables, f)
		}
	}
	return tables, nil
}

// ExtractWorkbooks flattens every workbook under root. Failures are logged
// and skipped.
func (r *Runner) ExtractWorkbooks(root string) error {
	books, err := Discover(root, r.cfg.Recursive, ExtXLSX)
	if err != nil {
		return err
	}
	for _, b := range books {
		if _, err := workbook.Extract(b, r.log); err != nil {
			r.log.WithField("workbook", b).Warnf("workbook skipped: %v", err)
		}
	}
	return nil
}

// Run converts every table under root. A per-file failure is recorded in the
// results and the batch continues; an output-file failure aborts it.
func (r *Runner) Run(root string, onProgress func()) ([]schema.TableResult, error) {
	if r.cfg.Workbooks {
		if err := r.ExtractWorkbooks(root); err != nil {
			return nil, err
		}
	}

	sources, err := r.Tables(root)
	if err != nil {
		return nil, err
	}
	return r.Process(sources, onProgress)
}

// Process loads and emits each source file in order.
func (r *Runner) Process(sources []string, onProgress func()) ([]schema.TableResult, error) {
	var results []schema.TableResult
	for _, src := range sources {
		res, err := r.processFile(src)
		results = append(results, res)
		if onProgress != nil {
			onProgress()
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Runner) processFile(src string) (schema.TableResult, error) {
	table := schema.NewTable(src)
	logger := r.log.WithFields(logrus.Fields{"database": table.Database, "table": table.Name})
	logger.WithField("file", src).Info("processing table file")
	if table.Name == "" {
		logger.WithField("file", src).Warn("no table name in file name")
	}

	res := schema.TableResult{
		Database: table.Database,
		Table:    table.Name,
		Source:   src,
	}

	if err := r.loader.Load(table); err != nil {
		logger.Errorf("load failed: %v", err)
		res.Status = schema.StatusFailed
		res.ErrorMsg = err.Error()
		return res, nil
	}
	res.Fields = len(table.Fields)

	if res.Fields == 0 {
		res.Status = schema.StatusEmpty
		return res, nil
	}

	out, err := r.emitter.Emit(table)
	res.Output = out
	if err != nil {
		res.Status = schema.StatusFailed
		res.ErrorMsg = err.Error()
		if errors.Is(err, ErrOutputOpen) {
			return res, err
		}
		logger.Errorf("emit failed: %v", err)
		return res, nil
	}

	res.Status = schema.StatusOK
	return res, nil
}
