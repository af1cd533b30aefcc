package dataset

import (
	"fmt"
	"strings"

	apperrors "github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
)

// Required columns. A load fails with a schema error when any is absent.
var RequiredColumns = []string{
	"player_id",
	"long_name",
	"overall",
	"potential",
	"value_eur",
	"age",
	"pace",
	"shooting",
	"passing",
	"dribbling",
	"defending",
	"physic",
	"club_name",
	"player_positions",
	"nationality_name",
	"league_name",
}

// Optional columns. Absence degrades gracefully: derived computations
// that need them are skipped.
var OptionalColumns = []string{
	"wage_eur",
	"height_cm",
	"weight_kg",
	"preferred_foot",
	"weak_foot",
	"skill_moves",
	"player_face_url",
	"gender",
}

// columnAliases maps alternate header spellings seen in exported player
// datasets to their canonical names.
var columnAliases = map[string]string{
	"sofifa_id":   "player_id",
	"id":          "player_id",
	"short_name":  "long_name",
	"name":        "long_name",
	"value":       "value_eur",
	"wage":        "wage_eur",
	"nationality": "nationality_name",
	"club":        "club_name",
	"positions":   "player_positions",
	"league":      "league_name",
	"physical":    "physic",
}

// Schema maps canonical column names to their positions in a header row.
type Schema struct {
	index map[string]int
}

// ResolveSchema builds a Schema from a header row. It returns a schema
// error naming every missing required column, so the caller sees the
// full damage at once instead of one column per attempt.
func ResolveSchema(header []string) (*Schema, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		name := canonicalName(col)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}

	return &Schema{index: index}, nil
}

func canonicalName(col string) string {
	name := strings.ToLower(strings.TrimSpace(col))
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}

// Index returns the position of a column and whether it is present.
func (s *Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Has reports whether the column is present.
func (s *Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// OptionalPresent returns the optional columns present in this schema.
func (s *Schema) OptionalPresent() []string {
	var present []string
	for _, col := range OptionalColumns {
		if s.Has(col) {
			present = append(present, col)
		}
	}
	return present
}
