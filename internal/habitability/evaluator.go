// Package habitability implements the weighted habitability scoring engine.
//
// Every function here is a pure computation over planet attributes: no
// storage access, no shared state, no caching. Evaluations are recomputed
// from scratch on every call, which keeps the engine trivially safe for
// concurrent use.
package habitability

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"planet-eval.io/planeteval/internal/domain"
	"planet-eval.io/planeteval/internal/pkg/logger"
)

// Optimal Earth-like values each factor is scored against.
const (
	OptimalOxygenPercent = 21.0 // Earth's atmospheric oxygen
	OptimalWaterPercent  = 71.0 // Earth's surface water coverage
	OptimalDistanceAU    = 1.0  // Earth's orbit
	OptimalHardness      = 5    // moderate hardness, workable for construction

	// MaxDistanceDeviationAU is the deviation at which the distance score
	// bottoms out.
	MaxDistanceDeviationAU = 5.0

	// neutralScore is used when an attribute that has a meaningful middle
	// ground is absent.
	neutralScore = 50.0
)

// Factor weights. They must sum to exactly 1.0; WeightSum exists so tests
// can assert the invariant.
const (
	OxygenWeight     = 0.25
	WaterWeight      = 0.25
	AtmosphereWeight = 0.20
	DistanceWeight   = 0.15
	SafetyWeight     = 0.10
	TerrainWeight    = 0.05
)

// WeightSum is the sum of all factor weights.
const WeightSum = OxygenWeight + WaterWeight + AtmosphereWeight + DistanceWeight + SafetyWeight + TerrainWeight

// Level thresholds: inclusive lower bounds, highest matching bound wins.
const (
	IdealThreshold     = 81.0
	ExcellentThreshold = 66.0
	GoodThreshold      = 51.0
	FairThreshold      = 36.0
	PoorThreshold      = 21.0
)

// clamp bounds a score to [0,100]. The formulas never exceed 100 on valid
// input, but out-of-range stored values must not leak past the engine.
func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// OxygenScore scores atmospheric oxygen against the Earth optimum.
// Missing means no measurable oxygen, which scores zero.
func OxygenScore(oxygenVolume *float64) float64 {
	if oxygenVolume == nil {
		return 0
	}
	maxDeviation := math.Max(OptimalOxygenPercent, 100-OptimalOxygenPercent)
	deviation := math.Abs(*oxygenVolume - OptimalOxygenPercent)
	return clamp(100 - deviation/maxDeviation*100)
}

// WaterScore scores surface water coverage against the Earth optimum.
// Missing means no detected water, which scores zero.
func WaterScore(waterVolume *float64) float64 {
	if waterVolume == nil {
		return 0
	}
	maxDeviation := math.Max(OptimalWaterPercent, 100-OptimalWaterPercent)
	deviation := math.Abs(*waterVolume - OptimalWaterPercent)
	return clamp(100 - deviation/maxDeviation*100)
}

// AtmosphereScore is binary: an atmosphere either exists or it does not.
func AtmosphereScore(hasAtmosphere bool) float64 {
	if hasAtmosphere {
		return 100
	}
	return 0
}

// DistanceScore scores orbital distance against the Earth optimum.
// An unknown orbit is neutral rather than disqualifying.
func DistanceScore(distanceFromSun *float64) float64 {
	if distanceFromSun == nil {
		return neutralScore
	}
	deviation := math.Abs(*distanceFromSun - OptimalDistanceAU)
	return clamp(100 - deviation/MaxDistanceDeviationAU*100)
}

// SafetyScore maps the 1-10 creature threat scale inversely onto [0,100]:
// threat 1 scores 100, threat 10 scores 0. Unknown threat is neutral.
func SafetyScore(threateningCreature *int) float64 {
	if threateningCreature == nil {
		return neutralScore
	}
	return clamp(100 - float64(*threateningCreature-1)*100/9)
}

// TerrainScore scores rock hardness against the moderate optimum.
// Unknown terrain is neutral.
func TerrainScore(hardnessOfRock *int) float64 {
	if hardnessOfRock == nil {
		return neutralScore
	}
	maxDeviation := math.Max(float64(OptimalHardness-1), float64(10-OptimalHardness))
	deviation := math.Abs(float64(*hardnessOfRock - OptimalHardness))
	return clamp(100 - deviation/maxDeviation*100)
}

// Scores computes all six factor sub-scores for a planet.
func Scores(p *domain.Planet) domain.FactorScores {
	return domain.FactorScores{
		Oxygen:     OxygenScore(p.OxygenVolume),
		Water:      WaterScore(p.WaterVolume),
		Atmosphere: AtmosphereScore(p.HasAtmosphere),
		Distance:   DistanceScore(p.DistanceFromSun),
		Safety:     SafetyScore(p.ThreateningCreature),
		Terrain:    TerrainScore(p.HardnessOfRock),
	}
}

// OverallScore combines factor scores with the fixed weights.
func OverallScore(s domain.FactorScores) float64 {
	return s.Oxygen*OxygenWeight +
		s.Water*WaterWeight +
		s.Atmosphere*AtmosphereWeight +
		s.Distance*DistanceWeight +
		s.Safety*SafetyWeight +
		s.Terrain*TerrainWeight
}

// Classify buckets an overall score into a habitability level.
func Classify(score float64) domain.HabitabilityLevel {
	switch {
	case score >= IdealThreshold:
		return domain.LevelIdeal
	case score >= ExcellentThreshold:
		return domain.LevelExcellent
	case score >= GoodThreshold:
		return domain.LevelGood
	case score >= FairThreshold:
		return domain.LevelFair
	case score >= PoorThreshold:
		return domain.LevelPoor
	default:
		return domain.LevelUninhabitable
	}
}

// Evaluate computes the full habitability evaluation of a planet.
func Evaluate(p *domain.Planet) domain.Evaluation {
	scores := Scores(p)
	overall := OverallScore(scores)
	level := Classify(overall)
	positive, negative := FactorExplanations(scores)

	return domain.Evaluation{
		PlanetID:        p.ID,
		PlanetName:      p.Name,
		FactorScores:    scores,
		OverallScore:    overall,
		Level:           level,
		PositiveFactors: positive,
		NegativeFactors: negative,
		Summary:         Summary(level, overall),
		EvaluatedAt:     time.Now().UTC(),
	}
}

// Rank evaluates every candidate planet and returns the evaluations sorted
// strictly descending by overall score. Ties keep input order. A nil planet
// in the batch is logged and skipped; one bad candidate never aborts the
// whole ranking.
func Rank(planets []*domain.Planet) []domain.Evaluation {
	evaluations := make([]domain.Evaluation, 0, len(planets))
	for i, p := range planets {
		if p == nil {
			logger.Error("Skipping unevaluable planet in ranking", zap.Int("index", i))
			continue
		}
		evaluations = append(evaluations, Evaluate(p))
	}

	sort.SliceStable(evaluations, func(i, j int) bool {
		return evaluations[i].OverallScore > evaluations[j].OverallScore
	})
	return evaluations
}

// ErrNoPlanets is returned by MostHabitable on an empty candidate set.
var ErrNoPlanets = fmt.Errorf("no planets available for evaluation")

// MostHabitable returns the highest-ranked evaluation. An empty candidate
// set is a reported outcome, not a zero value.
func MostHabitable(planets []*domain.Planet) (domain.Evaluation, error) {
	ranked := Rank(planets)
	if len(ranked) == 0 {
		return domain.Evaluation{}, ErrNoPlanets
	}
	return ranked[0], nil
}
