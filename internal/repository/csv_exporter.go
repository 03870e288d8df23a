package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"FinWeave/internal/domain/models"
	"FinWeave/pkg/logger"
)

// CSVExporter writes the master table to a local CSV file, one row per
// calendar date with a Date column and one close column per symbol. Null
// closes render as empty cells.
type CSVExporter struct {
	path string
	log  *logger.Logger
}

// NewCSVExporter creates an exporter targeting the given file path.
func NewCSVExporter(path string, log *logger.Logger) *CSVExporter {
	return &CSVExporter{path: path, log: log}
}

func (e *CSVExporter) Export(_ context.Context, table models.MasterTable, symbols []string) error {
	if len(table) == 0 {
		e.log.Warn("master table is empty, skipping csv export", logger.String("path", e.path))
		return nil
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(symbols)+1)
	header = append(header, "Date")
	for _, s := range symbols {
		header = append(header, models.CloseColumn(s))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, mr := range table {
		row[0] = mr.Date
		for i, s := range symbols {
			v := mr.Closes[models.CloseColumn(s)]
			if v.Valid {
				row[i+1] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			} else {
				row[i+1] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", mr.Date, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}

	e.log.Info("master table exported",
		logger.String("path", e.path),
		logger.Int("rows", len(table)),
		logger.Int("symbols", len(symbols)),
	)
	return nil
}

func (e *CSVExporter) Backend() string { return "csv" }

func (e *CSVExporter) Close() error { return nil }
