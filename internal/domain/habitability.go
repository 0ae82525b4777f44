package domain

import "time"

// HabitabilityLevel is the ordinal classification of an overall score.
type HabitabilityLevel int

const (
	LevelUninhabitable HabitabilityLevel = iota
	LevelPoor
	LevelFair
	LevelGood
	LevelExcellent
	LevelIdeal
)

var levelNames = map[HabitabilityLevel]string{
	LevelUninhabitable: "Uninhabitable",
	LevelPoor:          "Poor",
	LevelFair:          "Fair",
	LevelGood:          "Good",
	LevelExcellent:     "Excellent",
	LevelIdeal:         "Ideal",
}

// String returns the display name of the level.
func (l HabitabilityLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Uninhabitable"
}

// MarshalText implements encoding.TextMarshaler.
func (l HabitabilityLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// FactorScores holds the six independent habitability sub-scores,
// each in [0,100]. Scores are derived purely from a planet's attributes
// and recomputed on every evaluation; they are never persisted.
type FactorScores struct {
	Oxygen     float64 `json:"oxygen_score"`
	Water      float64 `json:"water_score"`
	Atmosphere float64 `json:"atmosphere_score"`
	Distance   float64 `json:"distance_score"`
	Safety     float64 `json:"safety_score"`
	Terrain    float64 `json:"terrain_score"`
}

// Evaluation is the full habitability evaluation of a single planet.
// Purely derived; recomputed on demand.
type Evaluation struct {
	PlanetID        int               `json:"planet_id"`
	PlanetName      string            `json:"planet_name"`
	FactorScores    FactorScores      `json:"factor_scores"`
	OverallScore    float64           `json:"overall_score"`
	Level           HabitabilityLevel `json:"habitability_level"`
	PositiveFactors []string          `json:"positive_factors"`
	NegativeFactors []string          `json:"negative_factors"`
	Summary         string            `json:"summary"`
	EvaluatedAt     time.Time         `json:"evaluated_at"`
}

// BatchEvaluation is the outcome of a multi-id evaluation request.
// Ids that were denied by policy or do not exist are reported, not
// silently dropped.
type BatchEvaluation struct {
	Evaluations         []Evaluation `json:"evaluations"`
	DeniedOrNotFoundIDs []int        `json:"denied_or_not_found_ids"`
}
