package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"planet-eval.io/planeteval/internal/access"
	"planet-eval.io/planeteval/internal/domain"
	"planet-eval.io/planeteval/internal/habitability"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/pkg/logger"
	"planet-eval.io/planeteval/internal/pkg/worker"
)

// DefaultMaxBatchIDs caps the number of ids a single batch evaluation
// request may carry. The cap is an input-validation concern enforced at
// the API boundary.
const DefaultMaxBatchIDs = 50

// EvaluateUseCase orchestrates habitability evaluation behind access
// control. It holds no mutable state of its own and is safe for
// concurrent use.
type EvaluateUseCase struct {
	planets PlanetStore
	users   UserStore
	policy  *access.Policy
	pool    *worker.Pool
}

// NewEvaluateUseCase creates a new EvaluateUseCase.
// pool may be nil, in which case batch work runs sequentially.
func NewEvaluateUseCase(planets PlanetStore, users UserStore, policy *access.Policy, pool *worker.Pool) *EvaluateUseCase {
	return &EvaluateUseCase{
		planets: planets,
		users:   users,
		policy:  policy,
		pool:    pool,
	}
}

// Evaluate scores a planet directly, bypassing access control. Callers
// that already hold an authorized planet use this.
func (uc *EvaluateUseCase) Evaluate(p *domain.Planet) domain.Evaluation {
	return habitability.Evaluate(p)
}

// EvaluateByID scores one planet on behalf of a user.
// Access denial and absence are distinct outcomes here; the transport
// layer decides whether to conflate them.
func (uc *EvaluateUseCase) EvaluateByID(ctx context.Context, planetID, userID int) (*domain.Evaluation, error) {
	planet, err := uc.authorizedPlanet(ctx, planetID, userID)
	if err != nil {
		return nil, err
	}
	eval := habitability.Evaluate(planet)
	return &eval, nil
}

// FactorScoresByID returns only the factor sub-scores for one planet,
// without the full evaluation envelope.
func (uc *EvaluateUseCase) FactorScoresByID(ctx context.Context, planetID, userID int) (*domain.FactorScores, error) {
	planet, err := uc.authorizedPlanet(ctx, planetID, userID)
	if err != nil {
		return nil, err
	}
	scores := habitability.Scores(planet)
	return &scores, nil
}

// RankAccessible evaluates every planet the user may read and returns the
// evaluations sorted descending by overall score. Ties keep store order.
func (uc *EvaluateUseCase) RankAccessible(ctx context.Context, userID int) ([]domain.Evaluation, error) {
	planets, err := uc.accessiblePlanets(ctx, userID)
	if err != nil {
		return nil, err
	}

	evaluations := uc.evaluateAll(ctx, planets)
	sort.SliceStable(evaluations, func(i, j int) bool {
		return evaluations[i].OverallScore > evaluations[j].OverallScore
	})
	return evaluations, nil
}

// MostHabitableAccessible returns the best-scoring accessible planet.
// An empty accessible set is a reported outcome, never a zero value.
func (uc *EvaluateUseCase) MostHabitableAccessible(ctx context.Context, userID int) (*domain.Evaluation, error) {
	ranked, err := uc.RankAccessible(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, apperrors.ErrNoPlanetsAvailable()
	}
	return &ranked[0], nil
}

// EvaluateBatch evaluates the requested ids the user may read and reports
// the rest. Requested ids are deduplicated; denied and missing ids end up
// in DeniedOrNotFoundIDs rather than being silently dropped.
func (uc *EvaluateUseCase) EvaluateBatch(ctx context.Context, planetIDs []int, userID int) (*domain.BatchEvaluation, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}

	var (
		granted []*domain.Planet
		skipped []int
		seen    = make(map[int]struct{}, len(planetIDs))
	)
	for _, id := range planetIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if !uc.policy.CanRead(user, id) {
			skipped = append(skipped, id)
			continue
		}
		planet, err := uc.planets.GetPlanet(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				skipped = append(skipped, id)
				continue
			}
			return nil, err
		}
		granted = append(granted, planet)
	}

	result := &domain.BatchEvaluation{
		Evaluations:         uc.evaluateAll(ctx, granted),
		DeniedOrNotFoundIDs: skipped,
	}
	if result.DeniedOrNotFoundIDs == nil {
		result.DeniedOrNotFoundIDs = []int{}
	}
	return result, nil
}

// AccessibleIDs resolves the set of planet ids the user may read.
func (uc *EvaluateUseCase) AccessibleIDs(ctx context.Context, userID int) (domain.PlanetIDSet, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	allIDs, err := uc.planets.GetAllPlanetIDs(ctx)
	if err != nil {
		return nil, err
	}
	return uc.policy.AccessibleIDs(user, allIDs), nil
}

// authorizedPlanet loads a planet after the policy grants read access.
func (uc *EvaluateUseCase) authorizedPlanet(ctx context.Context, planetID, userID int) (*domain.Planet, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.CanRead(user, planetID) {
		return nil, apperrors.ErrAccessDenied()
	}
	planet, err := uc.planets.GetPlanet(ctx, planetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPlanetNotFoundOrDenied(planetID)
		}
		return nil, err
	}
	return planet, nil
}

// accessiblePlanets loads all planets visible to the user, in store order.
func (uc *EvaluateUseCase) accessiblePlanets(ctx context.Context, userID int) ([]*domain.Planet, error) {
	ids, err := uc.AccessibleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return uc.planets.ListPlanets(ctx, ids)
}

// evaluateAll scores every planet, fanning out through the worker pool
// when one is available. Evaluations land at their input index so tie
// order stays deterministic regardless of scheduling.
func (uc *EvaluateUseCase) evaluateAll(ctx context.Context, planets []*domain.Planet) []domain.Evaluation {
	if len(planets) == 0 {
		return []domain.Evaluation{}
	}
	if uc.pool == nil {
		out := make([]domain.Evaluation, 0, len(planets))
		for i, p := range planets {
			if p == nil {
				logger.Error("Skipping unevaluable planet in batch", zap.Int("index", i))
				continue
			}
			out = append(out, habitability.Evaluate(p))
		}
		return out
	}

	evaluations := make([]domain.Evaluation, len(planets))
	valid := make([]bool, len(planets))

	var wg sync.WaitGroup
	for i, p := range planets {
		if p == nil {
			logger.Error("Skipping unevaluable planet in batch", zap.Int("index", i))
			continue
		}
		i, p := i, p
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			evaluations[i] = habitability.Evaluate(p)
			valid[i] = true
		}
		if err := uc.pool.Invoke(task); err != nil {
			// Pool unavailable: run inline so the wait group resolves.
			task()
		}
	}
	wg.Wait()

	out := make([]domain.Evaluation, 0, len(planets))
	for i := range evaluations {
		if valid[i] {
			out = append(out, evaluations[i])
		}
	}
	return out
}
