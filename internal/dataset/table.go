package dataset

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// Table is a validated, immutable snapshot of loaded player rows plus
// the set of optional columns the source actually carried.
type Table struct {
	Rows    []domain.PlayerRecord
	Present map[string]bool // optional column presence
	Source  string
}

// NewTable builds a table over the given rows.
func NewTable(rows []domain.PlayerRecord, optionalPresent []string, source string) *Table {
	present := make(map[string]bool, len(optionalPresent))
	for _, col := range optionalPresent {
		present[col] = true
	}
	return &Table{Rows: rows, Present: present, Source: source}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether an optional column was present in the source.
// Required columns always report true.
func (t *Table) HasColumn(col string) bool {
	for _, req := range RequiredColumns {
		if req == col {
			return true
		}
	}
	return t.Present[col]
}

// Fingerprint returns a stable content hash of the table, used as the
// cache key component for recomputation avoidance. Identical row content
// always hashes identically regardless of load source.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	for _, r := range t.Rows {
		binary.LittleEndian.PutUint64(buf[:], uint64(r.ID))
		h.Write(buf[:])
		h.Write([]byte(r.Name))
		for _, v := range []int{r.Overall, r.Potential, r.Age, r.Pace, r.Shooting, r.Passing, r.Dribbling, r.Defending, r.Physic, r.WeakFoot, r.SkillMoves} {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			h.Write(buf[:])
		}
		for _, f := range []float64{r.ValueEUR, r.WageEUR, r.HeightCM, r.WeightKG} {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(f*1000)))
			h.Write(buf[:])
		}
		h.Write([]byte(r.Positions))
		h.Write([]byte(r.League))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Merge concatenates tables into one. When a table lacks a gender column
// the given fallback tag is applied to its rows, matching how the male
// and female datasets were combined upstream. Identifiers stay unique
// across the merged table: a row whose ID already appeared in an earlier
// table is dropped, and the drop count is returned. Optional columns
// survive the merge only when present in every input, so downstream
// consumers never see a column that exists for half the rows.
func Merge(tables []*Table, genderFallbacks []string) (*Table, int, error) {
	if len(tables) == 0 {
		return nil, 0, fmt.Errorf("no tables to merge")
	}
	if genderFallbacks != nil && len(genderFallbacks) != len(tables) {
		return nil, 0, fmt.Errorf("gender fallbacks count %d does not match table count %d", len(genderFallbacks), len(tables))
	}

	total := 0
	for _, t := range tables {
		total += t.Len()
	}

	rows := make([]domain.PlayerRecord, 0, total)
	seen := make(map[int64]bool, total)
	duplicates := 0
	for i, t := range tables {
		for _, r := range t.Rows {
			if seen[r.ID] {
				duplicates++
				continue
			}
			seen[r.ID] = true
			if r.Gender == "" && genderFallbacks != nil {
				r.Gender = genderFallbacks[i]
			}
			rows = append(rows, r)
		}
	}

	var present []string
	for _, col := range OptionalColumns {
		if col == "gender" {
			if genderFallbacks != nil || tables[0].Present[col] {
				present = append(present, col)
			}
			continue
		}
		inAll := true
		for _, t := range tables {
			if !t.Present[col] {
				inAll = false
				break
			}
		}
		if inAll {
			present = append(present, col)
		}
	}

	return NewTable(rows, present, "merged"), duplicates, nil
}
