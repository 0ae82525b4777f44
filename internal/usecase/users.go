package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/pkg/logger"
	"planet-eval.io/planeteval/internal/pkg/worker"
)

// errAuthFailed is the single credential failure surfaced to clients.
// Missing user and wrong password are indistinguishable on purpose.
func errAuthFailed() *apperrors.AppError {
	return &apperrors.AppError{
		Code:       apperrors.CodeAuthFailed,
		Message:    "invalid username or password",
		HTTPStatus: 401,
	}
}

// UserUseCase serves authentication and user administration.
type UserUseCase struct {
	users UserDirectory
	pools *worker.Pools
}

// NewUserUseCase creates a new UserUseCase. pools may be nil, in which
// case login bookkeeping runs inline.
func NewUserUseCase(users UserDirectory, pools *worker.Pools) *UserUseCase {
	return &UserUseCase{users: users, pools: pools}
}

// Authenticate verifies a username/password pair and records the login
// time on success. Token issuance belongs to the transport layer.
func (uc *UserUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errAuthFailed()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errAuthFailed()
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	uc.recordLogin(ctx, user.ID, now)
	return user, nil
}

// recordLogin persists the login timestamp. Bookkeeping must not block
// or fail authentication, so it runs detached on the general pool when
// one is available and only warns on failure.
func (uc *UserUseCase) recordLogin(ctx context.Context, userID int, at time.Time) {
	record := func(ctx context.Context) {
		if err := uc.users.RecordLogin(ctx, userID, at); err != nil {
			logger.Warn("Failed to record login time",
				zap.Int("user_id", userID),
				zap.Error(err),
			)
		}
	}

	if uc.pools != nil {
		if err := uc.pools.SubmitDetached("general", record); err == nil {
			return
		}
		logger.Warn("Login bookkeeping fell back to inline execution",
			zap.Int("user_id", userID),
		)
	}
	record(ctx)
}

// GetByID loads one user.
func (uc *UserUseCase) GetByID(ctx context.Context, userID int) (*domain.User, error) {
	return requestingUser(ctx, uc.users, userID)
}

// List returns all users. Callers gate this behind the admin surface.
func (uc *UserUseCase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// AssignPlanet adds a planet to a user's assignment set. Assigning an
// already-assigned planet is a no-op, not an error.
func (uc *UserUseCase) AssignPlanet(ctx context.Context, userID, planetID int) (*domain.User, error) {
	user, err := uc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AssignedPlanetIDs == nil {
		user.AssignedPlanetIDs = domain.NewPlanetIDSet()
	}
	if user.AssignedPlanetIDs.Contains(planetID) {
		return user, nil
	}
	user.AssignedPlanetIDs.Add(planetID)
	if err := uc.users.UpdateAssignments(ctx, userID, user.AssignedPlanetIDs); err != nil {
		return nil, err
	}
	return user, nil
}

// RemovePlanet removes a planet from a user's assignment set. Removing
// an unassigned planet is a no-op.
func (uc *UserUseCase) RemovePlanet(ctx context.Context, userID, planetID int) (*domain.User, error) {
	user, err := uc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AssignedPlanetIDs == nil || !user.AssignedPlanetIDs.Contains(planetID) {
		return user, nil
	}
	user.AssignedPlanetIDs.Remove(planetID)
	if err := uc.users.UpdateAssignments(ctx, userID, user.AssignedPlanetIDs); err != nil {
		return nil, err
	}
	return user, nil
}
