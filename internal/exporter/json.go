package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

// JSONWriter persists structured reports (summaries, model metrics,
// cluster profiles) as pretty-printed JSON.
type JSONWriter struct {
	paths *config.Paths
}

// NewJSONWriter creates a JSON writer instance.
func NewJSONWriter(paths *config.Paths) *JSONWriter {
	return &JSONWriter{paths: paths}
}

// WriteJSON marshals v and writes it to filePath. Relative paths
// resolve under the reports directory.
func (w *JSONWriter) WriteJSON(filePath string, v any) error {
	fullPath := filePath
	if !filepath.IsAbs(filePath) && w.paths != nil {
		fullPath = filepath.Join(w.paths.ReportsDir, filePath)
	}

	slog.Info("Writing JSON report",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal report", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return errors.NewStorageError("failed to write report file", err)
	}
	return nil
}
