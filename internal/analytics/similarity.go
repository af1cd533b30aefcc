package analytics

import (
	"math"
	"sort"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// SimilarPlayer is one lookalike with its cosine similarity score.
type SimilarPlayer struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	Club       string  `json:"club"`
	Overall    int     `json:"overall"`
	Age        int     `json:"age"`
	ValueEUR   float64 `json:"value_eur"`
	Similarity float64 `json:"similarity"`
}

// similarityVector is the profile compared across players: overall,
// the six skills and age.
func similarityVector(p domain.PlayerRecord) []float64 {
	skills := p.SkillRatings()
	return []float64{
		float64(p.Overall),
		skills[0], skills[1], skills[2], skills[3], skills[4], skills[5],
		float64(p.Age),
	}
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similar returns the n players closest to the given player ID by
// cosine similarity over the skill profile. The player itself is
// excluded from its own results.
func Similar(derived *features.Result, playerID int64, n int) ([]SimilarPlayer, error) {
	if n <= 0 {
		n = 10
	}

	var target []float64
	for _, row := range derived.Rows {
		if row.Player.ID == playerID {
			target = similarityVector(row.Player)
			break
		}
	}
	if target == nil {
		return nil, errors.NewValidationError("player not found in dataset", nil).
			WithContext("player_id", playerID)
	}

	out := make([]SimilarPlayer, 0, len(derived.Rows)-1)
	for _, row := range derived.Rows {
		if row.Player.ID == playerID {
			continue
		}
		out = append(out, SimilarPlayer{
			PlayerID:   row.Player.ID,
			Name:       row.Player.Name,
			Club:       row.Player.Club,
			Overall:    row.Player.Overall,
			Age:        row.Player.Age,
			ValueEUR:   row.Player.ValueEUR,
			Similarity: cosine(target, similarityVector(row.Player)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n], nil
}
