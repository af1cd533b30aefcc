// Package validation checks input and output locations before the
// pipeline touches them, so a bad path fails fast with a clear message
// instead of halfway through a load.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// datasetExtensions are the file types the loader accepts.
var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xlsm": true,
}

// FileValidator validates the files and directories the CLIs work with.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateFile checks that a file exists and is readable.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateDatasetFile checks that a file is a readable player export:
// CSV or Excel, and not an editor temp file.
func (v *FileValidator) ValidateDatasetFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !datasetExtensions[ext] {
		v.logger.Error("Unsupported dataset file type",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a supported dataset file (extension: %s)", path, ext)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("file %s is a temporary Excel file", path)
	}
	return nil
}

// ValidateDatasetFiles validates every input file, collecting the first
// failure.
func (v *FileValidator) ValidateDatasetFiles(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no input files given")
	}
	for _, path := range paths {
		if err := v.ValidateDatasetFile(path); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutputDirectory ensures the output directory exists and is
// writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)
	return nil
}
