package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: data inputs,
// generated reports and logs all resolve through here.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	// Well-known files
	MalePlayersCSV   string
	FemalePlayersCSV string
	CombinedCSV      string
	SummaryJSON      string
}

// GetPaths returns application paths rooted at the executable directory,
// so the tools behave the same regardless of the working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return GetPathsFrom(filepath.Dir(exe)), nil
}

// GetPathsFrom builds the path set rooted at the given base directory.
func GetPathsFrom(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")
	logsDir := filepath.Join(baseDir, "logs")

	return &Paths{
		BaseDir:    baseDir,
		DataDir:    dataDir,
		ReportsDir: reportsDir,
		LogsDir:    logsDir,

		MalePlayersCSV:   filepath.Join(dataDir, MalePlayersFile),
		FemalePlayersCSV: filepath.Join(dataDir, FemalePlayersFile),
		CombinedCSV:      filepath.Join(reportsDir, CombinedDataFile),
		SummaryJSON:      filepath.Join(reportsDir, "dataset_summary.json"),
	}
}

// EnsureDirs creates all directories the pipeline writes to.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
