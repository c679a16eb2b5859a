// Package workbook flattens multi-sheet spreadsheet workbooks into one CSV
// file per sheet, named the way the schema loader expects.
package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const dbSeparator = "__"

// DatabaseName returns the database a workbook describes: the file stem up
// to the first "__" (e.g. `images__v2.xlsx` -> `images`).
func DatabaseName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.Split(stem, dbSeparator)[0]
}

// SheetFilename returns the CSV path for one sheet: `<dir>/<db>/<db> - <sheet>.csv`.
func SheetFilename(path, sheet string) string {
	db := DatabaseName(path)
	return filepath.Join(filepath.Dir(path), db, db+" - "+sheet+".csv")
}

// Extract writes every sheet of the workbook at path to its own CSV file and
// returns the files written, in sheet order.
func Extract(path string, log logrus.FieldLogger) ([]string, error) {
	logger := log.WithField("workbook", path)
	logger.Info("extract csv started")

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer wb.Close()

	outDir := filepath.Join(filepath.Dir(path), DatabaseName(path))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", outDir, err)
	}

	sheets := wb.GetSheetList()
	logger.WithField("sheets", len(sheets)).Debugf("sheets: %v", sheets)

	var written []string
	for _, sheet := range sheets {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return written, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}

		out := SheetFilename(path, sheet)
		logger.WithField("csv", out).Info("write csv")
		if err := writeCSV(out, rows); err != nil {
			return written, err
		}
		written = append(written, out)
	}

	logger.Info("extract csv done")
	return written, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
