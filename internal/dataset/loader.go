package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// LoadReport describes what happened during a load. Dropped rows are
// counted and reported to the caller, never silently discarded.
type LoadReport struct {
	TotalRows        int `json:"total_rows"`
	LoadedRows       int `json:"loaded_rows"`
	DroppedParse     int `json:"dropped_parse"`
	DroppedCritical  int `json:"dropped_critical"`
	DroppedDuplicate int `json:"dropped_duplicate"`
}

// Loader reads player datasets from CSV or Excel files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads a player CSV file into a validated table. A missing
// required column aborts the load with a schema error and zero rows;
// rows that fail type coercion or lack critical values (identifier,
// overall) are dropped and counted in the report.
func (l *Loader) Load(ctx context.Context, path string) (*Table, *LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to open dataset file", err).WithContext("path", path)
	}
	defer file.Close()

	table, report, err := l.loadCSV(ctx, file, path)
	if err != nil {
		return nil, nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("loaded_rows", report.LoadedRows),
		slog.Int("dropped_parse", report.DroppedParse),
		slog.Int("dropped_critical", report.DroppedCritical),
		slog.Int("dropped_duplicate", report.DroppedDuplicate))

	return table, report, nil
}

func (l *Loader) loadCSV(ctx context.Context, r io.Reader, source string) (*Table, *LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, apperrors.NewParseError("failed to read header row", err).WithContext("source", source)
	}

	schema, err := ResolveSchema(header)
	if err != nil {
		return nil, nil, err
	}

	report := &LoadReport{}
	var rows []domain.PlayerRecord
	seen := make(map[int64]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV line: drop and continue, matching the
			// row-level degradation policy.
			report.TotalRows++
			report.DroppedParse++
			continue
		}
		report.TotalRows++

		// Critical cells first: identifier and overall must be present.
		if !schemaCellPresent(schema, record, "player_id") || !schemaCellPresent(schema, record, "overall") {
			report.DroppedCritical++
			continue
		}

		row, perr := parseRow(schema, record)
		if perr != nil {
			report.DroppedParse++
			l.logger.DebugContext(ctx, "row dropped",
				slog.Int("row", report.TotalRows),
				slog.String("reason", perr.Error()))
			continue
		}
		if row.ID <= 0 {
			report.DroppedCritical++
			continue
		}
		// Identifiers are unique across the table; the first
		// occurrence wins.
		if seen[row.ID] {
			report.DroppedDuplicate++
			l.logger.DebugContext(ctx, "duplicate row dropped",
				slog.Int64("player_id", row.ID))
			continue
		}
		seen[row.ID] = true
		rows = append(rows, row)
	}

	report.LoadedRows = len(rows)
	return NewTable(rows, schema.OptionalPresent(), source), report, nil
}

func schemaCellPresent(schema *Schema, record []string, col string) bool {
	idx, ok := schema.Index(col)
	return ok && idx < len(record) && strings.TrimSpace(record[idx]) != ""
}

// parseRow coerces one CSV record into a PlayerRecord. Any coercion
// failure on a required cell is a parse error for the whole row.
func parseRow(schema *Schema, record []string) (domain.PlayerRecord, error) {
	cell := func(col string) string {
		if idx, ok := schema.Index(col); ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var row domain.PlayerRecord
	var err error

	if row.ID, err = parseInt64(cell("player_id")); err != nil {
		return row, fmt.Errorf("player_id: %w", err)
	}
	row.Name = cell("long_name")

	ints := []struct {
		col string
		dst *int
	}{
		{"overall", &row.Overall},
		{"potential", &row.Potential},
		{"age", &row.Age},
		{"pace", &row.Pace},
		{"shooting", &row.Shooting},
		{"passing", &row.Passing},
		{"dribbling", &row.Dribbling},
		{"defending", &row.Defending},
		{"physic", &row.Physic},
	}
	for _, f := range ints {
		if *f.dst, err = parseRating(cell(f.col)); err != nil {
			return row, fmt.Errorf("%s: %w", f.col, err)
		}
	}

	if row.ValueEUR, err = parseFloat(cell("value_eur")); err != nil {
		return row, fmt.Errorf("value_eur: %w", err)
	}

	row.Club = cell("club_name")
	row.Positions = cell("player_positions")
	row.Nationality = cell("nationality_name")
	row.League = cell("league_name")

	// Optional columns: empty cells stay at zero values, bad cells are
	// still parse failures so garbage never masquerades as data.
	if v := cell("wage_eur"); v != "" {
		if row.WageEUR, err = parseFloat(v); err != nil {
			return row, fmt.Errorf("wage_eur: %w", err)
		}
	}
	if v := cell("height_cm"); v != "" {
		if row.HeightCM, err = parseFloat(v); err != nil {
			return row, fmt.Errorf("height_cm: %w", err)
		}
	}
	if v := cell("weight_kg"); v != "" {
		if row.WeightKG, err = parseFloat(v); err != nil {
			return row, fmt.Errorf("weight_kg: %w", err)
		}
	}
	if v := cell("weak_foot"); v != "" {
		if row.WeakFoot, err = parseRating(v); err != nil {
			return row, fmt.Errorf("weak_foot: %w", err)
		}
	}
	if v := cell("skill_moves"); v != "" {
		if row.SkillMoves, err = parseRating(v); err != nil {
			return row, fmt.Errorf("skill_moves: %w", err)
		}
	}
	row.PreferredFoot = cell("preferred_foot")
	row.FaceURL = cell("player_face_url")
	row.Gender = cell("gender")

	return row, nil
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseInt(stripThousands(s), 10, 64)
}

// parseRating coerces a rating cell to an integer. Ratings sometimes
// arrive as floats ("67.0") in exported datasets; those are accepted.
func parseRating(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	s = stripThousands(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(stripThousands(s), 64)
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
