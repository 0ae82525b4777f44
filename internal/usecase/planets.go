package usecase

import (
	"context"
	"errors"
	"net/http"

	"planet-eval.io/planeteval/internal/access"
	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
)

// UpdatePlanetInput carries a partial planet update. Every field is a
// pointer; nil means "leave the stored value alone". This is how the API
// lets a client change one attribute without resending the whole record.
type UpdatePlanetInput struct {
	Name                *string  `json:"name,omitempty"`
	Type                *string  `json:"type,omitempty"`
	Mass                *float64 `json:"mass,omitempty"`
	Radius              *float64 `json:"radius,omitempty"`
	DistanceFromSun     *float64 `json:"distance_from_sun,omitempty"`
	NumberOfMoons       *int     `json:"number_of_moons,omitempty"`
	HasAtmosphere       *bool    `json:"has_atmosphere,omitempty"`
	OxygenVolume        *float64 `json:"oxygen_volume,omitempty"`
	WaterVolume         *float64 `json:"water_volume,omitempty"`
	HardnessOfRock      *int     `json:"hardness_of_rock,omitempty"`
	ThreateningCreature *int     `json:"threatening_creature,omitempty"`
	Description         *string  `json:"description,omitempty"`
}

// PlanetUseCase is the access-gated CRUD surface over the planet store.
type PlanetUseCase struct {
	planets PlanetStore
	users   UserStore
	policy  *access.Policy
}

// NewPlanetUseCase creates a new PlanetUseCase.
func NewPlanetUseCase(planets PlanetStore, users UserStore, policy *access.Policy) *PlanetUseCase {
	return &PlanetUseCase{
		planets: planets,
		users:   users,
		policy:  policy,
	}
}

// List returns the planets the user may read, in store order. A user with
// no accessible planets gets an empty slice, not an error.
func (uc *PlanetUseCase) List(ctx context.Context, userID int) ([]*domain.Planet, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	allIDs, err := uc.planets.GetAllPlanetIDs(ctx)
	if err != nil {
		return nil, err
	}
	ids := uc.policy.AccessibleIDs(user, allIDs)
	if len(ids) == 0 {
		return []*domain.Planet{}, nil
	}
	planets, err := uc.planets.ListPlanets(ctx, ids)
	if err != nil {
		return nil, err
	}
	if planets == nil {
		planets = []*domain.Planet{}
	}
	return planets, nil
}

// GetByID loads one planet for a user. Denial and absence stay distinct
// outcomes at this layer.
func (uc *PlanetUseCase) GetByID(ctx context.Context, planetID, userID int) (*domain.Planet, error) {
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

// Create stores a new planet on behalf of a user with creation rights.
func (uc *PlanetUseCase) Create(ctx context.Context, userID int, p *domain.Planet) (*domain.Planet, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.CanCreate(user) {
		return nil, apperrors.ErrAccessDenied()
	}
	if err := p.Validate(); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, err.Error(), http.StatusBadRequest)
	}
	created, err := uc.planets.CreatePlanet(ctx, p)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePlanetCreateFail, "failed to create planet", http.StatusInternalServerError)
	}
	return created, nil
}

// Update applies a partial update to a planet the user may edit. Fields
// absent from the input keep their stored values.
func (uc *PlanetUseCase) Update(ctx context.Context, planetID, userID int, input UpdatePlanetInput) (*domain.Planet, error) {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.planets.GetPlanet(ctx, planetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPlanetNotFoundOrDenied(planetID)
		}
		return nil, err
	}
	if !uc.policy.CanEdit(user, planetID) {
		return nil, apperrors.ErrAccessDenied()
	}

	merged := *existing
	applyUpdate(&merged, input)
	if err := merged.Validate(); err != nil {
		return nil, apperrors.New(apperrors.CodeValidationFailed, err.Error(), http.StatusBadRequest)
	}

	updated, err := uc.planets.UpdatePlanet(ctx, &merged)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPlanetNotFoundOrDenied(planetID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodePlanetUpdateFail, "failed to update planet", http.StatusInternalServerError)
	}
	return updated, nil
}

// Delete removes a planet for a user with deletion rights.
func (uc *PlanetUseCase) Delete(ctx context.Context, planetID, userID int) error {
	user, err := requestingUser(ctx, uc.users, userID)
	if err != nil {
		return err
	}
	if !uc.policy.CanDelete(user, planetID) {
		return apperrors.ErrAccessDenied()
	}
	if err := uc.planets.DeletePlanet(ctx, planetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrPlanetNotFoundOrDenied(planetID)
		}
		return apperrors.Wrap(err, apperrors.CodePlanetDeleteFail, "failed to delete planet", http.StatusInternalServerError)
	}
	return nil
}

// applyUpdate copies present input fields onto the planet.
func applyUpdate(p *domain.Planet, in UpdatePlanetInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Type != nil {
		p.Type = in.Type
	}
	if in.Mass != nil {
		p.Mass = in.Mass
	}
	if in.Radius != nil {
		p.Radius = in.Radius
	}
	if in.DistanceFromSun != nil {
		p.DistanceFromSun = in.DistanceFromSun
	}
	if in.NumberOfMoons != nil {
		p.NumberOfMoons = in.NumberOfMoons
	}
	if in.HasAtmosphere != nil {
		p.HasAtmosphere = *in.HasAtmosphere
	}
	if in.OxygenVolume != nil {
		p.OxygenVolume = in.OxygenVolume
	}
	if in.WaterVolume != nil {
		p.WaterVolume = in.WaterVolume
	}
	if in.HardnessOfRock != nil {
		p.HardnessOfRock = in.HardnessOfRock
	}
	if in.ThreateningCreature != nil {
		p.ThreateningCreature = in.ThreateningCreature
	}
	if in.Description != nil {
		p.Description = in.Description
	}
}
