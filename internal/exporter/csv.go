// Package exporter writes pipeline outputs to disk as CSV and JSON
// report files under the configured reports directory.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

// CSVWriter provides CSV export functionality.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options. Relative
// paths resolve under the reports directory.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.NewStorageError("failed to open report file", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write headers", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}
	return writer.Error()
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	if w.paths != nil {
		return filepath.Join(w.paths.ReportsDir, filePath)
	}
	return filePath
}
