// Package usecase provides the application use cases that compose the
// access policy, the habitability evaluator, and the backing stores.
//
// Use cases are transport-agnostic: the HTTP layer is one consumer, the
// seed command another.
package usecase

import (
	"context"
	"errors"
	"time"

	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
)

// PlanetStore is the narrow planet persistence contract the use cases
// consume. Implementations return errors.ErrNotFound (wrapped or bare)
// for missing ids.
type PlanetStore interface {
	GetPlanet(ctx context.Context, id int) (*domain.Planet, error)
	GetAllPlanetIDs(ctx context.Context) (domain.PlanetIDSet, error)
	ListPlanets(ctx context.Context, ids domain.PlanetIDSet) ([]*domain.Planet, error)
	CreatePlanet(ctx context.Context, p *domain.Planet) (*domain.Planet, error)
	UpdatePlanet(ctx context.Context, p *domain.Planet) (*domain.Planet, error)
	DeletePlanet(ctx context.Context, id int) error
}

// UserStore is the narrow user persistence contract.
type UserStore interface {
	GetUser(ctx context.Context, id int) (*domain.User, error)
}

// UserDirectory extends UserStore with the lookups and mutations the
// auth and user-administration surfaces need.
type UserDirectory interface {
	UserStore
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateAssignments(ctx context.Context, userID int, ids domain.PlanetIDSet) error
	RecordLogin(ctx context.Context, userID int, at time.Time) error
}

// requestingUser loads the user acting on a request. Only a genuine
// absence maps to USER_NOT_FOUND; store failures propagate so an outage
// never masquerades as a missing user.
func requestingUser(ctx context.Context, users UserStore, userID int) (*domain.User, error) {
	user, err := users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, err
	}
	return user, nil
}
