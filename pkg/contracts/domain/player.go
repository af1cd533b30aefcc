package domain

import (
	"strings"
)

// PlayerRecord represents one player row from a loaded dataset.
// Records are immutable snapshots of the source table; derived values
// live in their own columns and never overwrite the originals.
type PlayerRecord struct {
	ID          int64   `json:"player_id" csv:"player_id"`
	Name        string  `json:"long_name" csv:"long_name"`
	Overall     int     `json:"overall" csv:"overall" validate:"min=0,max=100"`
	Potential   int     `json:"potential" csv:"potential" validate:"min=0,max=100"`
	ValueEUR    float64 `json:"value_eur" csv:"value_eur" validate:"min=0"`
	Age         int     `json:"age" csv:"age" validate:"gt=0"`
	Pace        int     `json:"pace" csv:"pace" validate:"min=0,max=100"`
	Shooting    int     `json:"shooting" csv:"shooting" validate:"min=0,max=100"`
	Passing     int     `json:"passing" csv:"passing" validate:"min=0,max=100"`
	Dribbling   int     `json:"dribbling" csv:"dribbling" validate:"min=0,max=100"`
	Defending   int     `json:"defending" csv:"defending" validate:"min=0,max=100"`
	Physic      int     `json:"physic" csv:"physic" validate:"min=0,max=100"`
	Club        string  `json:"club_name" csv:"club_name"`
	Positions   string  `json:"player_positions" csv:"player_positions"`
	Nationality string  `json:"nationality_name" csv:"nationality_name"`
	League      string  `json:"league_name" csv:"league_name"`

	// Optional columns; zero values mean "absent from source".
	WageEUR       float64 `json:"wage_eur,omitempty" csv:"wage_eur"`
	HeightCM      float64 `json:"height_cm,omitempty" csv:"height_cm"`
	WeightKG      float64 `json:"weight_kg,omitempty" csv:"weight_kg"`
	PreferredFoot string  `json:"preferred_foot,omitempty" csv:"preferred_foot"`
	WeakFoot      int     `json:"weak_foot,omitempty" csv:"weak_foot"`
	SkillMoves    int     `json:"skill_moves,omitempty" csv:"skill_moves"`
	FaceURL       string  `json:"player_face_url,omitempty" csv:"player_face_url"`
	Gender        string  `json:"gender,omitempty" csv:"gender"`
}

// IsValid checks the core invariants of a player record.
func (p PlayerRecord) IsValid() bool {
	return p.ID > 0 && p.Name != "" &&
		p.Overall >= 0 && p.Overall <= 100 &&
		p.Potential >= 0 && p.Potential <= 100 &&
		p.ValueEUR >= 0 && p.Age > 0
}

// SkillRatings returns the six skill attributes in canonical order:
// pace, shooting, passing, dribbling, defending, physic.
func (p PlayerRecord) SkillRatings() [6]float64 {
	return [6]float64{
		float64(p.Pace),
		float64(p.Shooting),
		float64(p.Passing),
		float64(p.Dribbling),
		float64(p.Defending),
		float64(p.Physic),
	}
}

// PositionTags splits the comma-separated position string into tags.
func (p PlayerRecord) PositionTags() []string {
	if p.Positions == "" {
		return nil
	}
	parts := strings.Split(p.Positions, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, strings.ToUpper(tag))
		}
	}
	return tags
}

// PositionGroup classifies a player's primary role from its position tags.
type PositionGroup string

const (
	PositionGoalkeeper PositionGroup = "GK"
	PositionDefender   PositionGroup = "DEF"
	PositionMidfielder PositionGroup = "MID"
	PositionForward    PositionGroup = "FWD"
)

var (
	defenderTags   = []string{"CB", "LB", "RB", "LWB", "RWB"}
	midfielderTags = []string{"CM", "CDM", "CAM"}
)

// Group maps the player's position tags to a coarse position group.
// Goalkeepers win over everything; otherwise the first matching tag
// decides, with forward/winger as the fallback (matching how report
// generation in the dashboards bucketed players).
func (p PlayerRecord) Group() PositionGroup {
	tags := p.PositionTags()
	for _, tag := range tags {
		if tag == "GK" {
			return PositionGoalkeeper
		}
	}
	for _, tag := range tags {
		for _, d := range defenderTags {
			if tag == d {
				return PositionDefender
			}
		}
	}
	for _, tag := range tags {
		for _, m := range midfielderTags {
			if tag == m {
				return PositionMidfielder
			}
		}
	}
	return PositionForward
}

// SkillColumns is the canonical skill column order used for feature
// matrices and clustering.
var SkillColumns = []string{"pace", "shooting", "passing", "dribbling", "defending", "physic"}
