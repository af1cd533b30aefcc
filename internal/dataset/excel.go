package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

// LoadExcel reads a player dataset from an .xlsx workbook. The sheet
// holding the data is discovered by inspecting headers, since exported
// workbooks name their sheets inconsistently.
func (l *Loader) LoadExcel(ctx context.Context, path string) (*Table, *LoadReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	rows, sheetName, err := findPlayerSheet(f)
	if err != nil {
		return nil, nil, err
	}

	l.logger.InfoContext(ctx, "found player data sheet",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	// Re-encode as CSV so both formats flow through one parsing path.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, nil, apperrors.NewParseError("failed to buffer sheet rows", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, nil, apperrors.NewParseError("failed to buffer sheet rows", err)
	}

	return l.loadCSV(ctx, &buf, path)
}

// findPlayerSheet locates the sheet containing player data. Common
// sheet names are tried first, then every sheet is checked for a header
// row carrying the key player columns.
func findPlayerSheet(f *excelize.File) ([][]string, string, error) {
	possibleNames := []string{"Players", "players", "Data", "Sheet1"}

	for _, name := range possibleNames {
		if rows, err := f.GetRows(name); err == nil && sheetLooksLikePlayers(rows) {
			return rows, name, nil
		}
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if sheetLooksLikePlayers(rows) {
			return rows, name, nil
		}
	}

	return nil, "", apperrors.NewSchemaError("could not find player data sheet in workbook", nil)
}

func sheetLooksLikePlayers(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}
	headerText := strings.ToLower(strings.Join(rows[0], " "))
	return strings.Contains(headerText, "overall") &&
		(strings.Contains(headerText, "player_id") || strings.Contains(headerText, "sofifa_id") || strings.Contains(headerText, "id")) &&
		(strings.Contains(headerText, "value") || strings.Contains(headerText, "potential"))
}
