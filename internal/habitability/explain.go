package habitability

import (
	"fmt"

	"planet-eval.io/planeteval/internal/domain"
)

// Explanation thresholds: a factor scoring at or above PositiveThreshold
// yields its positive statement, below NegativeThreshold its negative one.
// Scores in between yield nothing. Atmosphere is binary, so it emits its
// negative statement whenever it is not at full score.
const (
	PositiveThreshold = 70.0
	NegativeThreshold = 30.0
)

// FactorExplanations generates the canned positive and negative factor
// statements for a set of scores.
func FactorExplanations(s domain.FactorScores) (positive, negative []string) {
	positive = []string{}
	negative = []string{}

	if s.Oxygen >= PositiveThreshold {
		positive = append(positive, "Good oxygen levels")
	} else if s.Oxygen < NegativeThreshold {
		negative = append(negative, "Poor oxygen levels")
	}

	if s.Water >= PositiveThreshold {
		positive = append(positive, "Abundant water resources")
	} else if s.Water < NegativeThreshold {
		negative = append(negative, "Limited water availability")
	}

	if s.Atmosphere >= PositiveThreshold {
		positive = append(positive, "Suitable atmosphere")
	} else {
		negative = append(negative, "No atmosphere or unsuitable atmosphere")
	}

	if s.Distance >= PositiveThreshold {
		positive = append(positive, "Optimal distance from sun")
	} else if s.Distance < NegativeThreshold {
		negative = append(negative, "Too close or too far from sun")
	}

	if s.Safety >= PositiveThreshold {
		positive = append(positive, "Safe from dangerous creatures")
	} else if s.Safety < NegativeThreshold {
		negative = append(negative, "High threat from dangerous creatures")
	}

	if s.Terrain >= PositiveThreshold {
		positive = append(positive, "Suitable terrain for settlement")
	} else if s.Terrain < NegativeThreshold {
		negative = append(negative, "Challenging terrain conditions")
	}

	return positive, negative
}

// Summary renders the templated one-line summary for a level and score.
func Summary(level domain.HabitabilityLevel, score float64) string {
	switch level {
	case domain.LevelIdeal:
		return fmt.Sprintf("Excellent habitability (Score: %.1f). This planet offers ideal conditions for human settlement.", score)
	case domain.LevelExcellent:
		return fmt.Sprintf("Very good habitability (Score: %.1f). This planet is well-suited for colonization with minor challenges.", score)
	case domain.LevelGood:
		return fmt.Sprintf("Good habitability (Score: %.1f). Settlement is feasible with some adaptation required.", score)
	case domain.LevelFair:
		return fmt.Sprintf("Fair habitability (Score: %.1f). Settlement is possible but may require significant adaptation.", score)
	case domain.LevelPoor:
		return fmt.Sprintf("Poor habitability (Score: %.1f). Survival would be challenging and require extensive life support.", score)
	default:
		return fmt.Sprintf("Uninhabitable (Score: %.1f). This planet cannot support human life under current conditions.", score)
	}
}
