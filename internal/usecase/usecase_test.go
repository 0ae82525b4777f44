package usecase

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"planet-eval.io/planeteval/internal/access"
	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/pkg/logger"
	"planet-eval.io/planeteval/internal/pkg/worker"
)

func TestMain(m *testing.M) {
	_ = logger.Init("error", "json")
	os.Exit(m.Run())
}

// memPlanetStore is an in-memory PlanetStore for tests.
type memPlanetStore struct {
	planets map[int]*domain.Planet
	order   []int
	nextID  int
}

func newMemPlanetStore(planets ...*domain.Planet) *memPlanetStore {
	s := &memPlanetStore{planets: make(map[int]*domain.Planet), nextID: 1}
	for _, p := range planets {
		cp := *p
		s.planets[cp.ID] = &cp
		s.order = append(s.order, cp.ID)
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	return s
}

func (s *memPlanetStore) GetPlanet(_ context.Context, id int) (*domain.Planet, error) {
	p, ok := s.planets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memPlanetStore) GetAllPlanetIDs(_ context.Context) (domain.PlanetIDSet, error) {
	return domain.NewPlanetIDSet(s.order...), nil
}

func (s *memPlanetStore) ListPlanets(_ context.Context, ids domain.PlanetIDSet) ([]*domain.Planet, error) {
	var out []*domain.Planet
	for _, id := range s.order {
		if ids.Contains(id) {
			cp := *s.planets[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memPlanetStore) CreatePlanet(_ context.Context, p *domain.Planet) (*domain.Planet, error) {
	cp := *p
	cp.ID = s.nextID
	cp.CreatedAt = time.Now().UTC()
	s.nextID++
	s.planets[cp.ID] = &cp
	s.order = append(s.order, cp.ID)
	out := cp
	return &out, nil
}

func (s *memPlanetStore) UpdatePlanet(_ context.Context, p *domain.Planet) (*domain.Planet, error) {
	if _, ok := s.planets[p.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	now := time.Now().UTC()
	cp.UpdatedAt = &now
	s.planets[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memPlanetStore) DeletePlanet(_ context.Context, id int) error {
	if _, ok := s.planets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.planets, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// memUserStore is an in-memory UserDirectory for tests.
type memUserStore struct {
	users map[int]*domain.User
}

func newMemUserStore(users ...*domain.User) *memUserStore {
	s := &memUserStore{users: make(map[int]*domain.User)}
	for _, u := range users {
		cp := *u
		s.users[cp.ID] = &cp
	}
	return s
}

func (s *memUserStore) GetUser(_ context.Context, id int) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memUserStore) ListUsers(_ context.Context) ([]*domain.User, error) {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		cp := *s.users[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memUserStore) UpdateAssignments(_ context.Context, userID int, ids domain.PlanetIDSet) error {
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.AssignedPlanetIDs = domain.NewPlanetIDSet(ids.Sorted()...)
	return nil
}

func (s *memUserStore) RecordLogin(_ context.Context, userID int, at time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// planetScoring builds a planet whose overall score is driven by oxygen
// and water while the remaining factors stay fixed.
func planetScoring(id int, name string, oxygen, water float64) *domain.Planet {
	return &domain.Planet{
		ID:                  id,
		Name:                name,
		HasAtmosphere:       true,
		OxygenVolume:        fptr(oxygen),
		WaterVolume:         fptr(water),
		DistanceFromSun:     fptr(1),
		ThreateningCreature: iptr(1),
		HardnessOfRock:      iptr(5),
	}
}

func testUsers() *memUserStore {
	return newMemUserStore(
		&domain.User{ID: 1, Username: "superadmin", Role: domain.RoleSuperAdmin},
		&domain.User{ID: 2, Username: "planetadmin", Role: domain.RolePlanetAdmin, AssignedPlanetIDs: domain.NewPlanetIDSet(1, 2)},
		&domain.User{ID: 3, Username: "viewer1", Role: domain.RoleViewer1},
		&domain.User{ID: 4, Username: "viewer2", Role: domain.RoleViewer2},
		&domain.User{ID: 5, Username: "viewer", Role: domain.RoleViewer, AssignedPlanetIDs: domain.NewPlanetIDSet(2)},
	)
}

func testPlanets() *memPlanetStore {
	return newMemPlanetStore(
		planetScoring(1, "Terra Nova", 21, 71),
		planetScoring(2, "Kepler-442b", 10, 40),
		planetScoring(3, "Dust Bowl", 2, 5),
	)
}

func newEvaluateUC(t *testing.T, planets *memPlanetStore, users *memUserStore) *EvaluateUseCase {
	t.Helper()
	pools, err := worker.NewPools(context.Background(), worker.PoolConfig{GeneralPoolSize: 4, EvalPoolSize: 4})
	require.NoError(t, err)
	t.Cleanup(pools.Shutdown)
	return NewEvaluateUseCase(planets, users, access.NewPolicy(access.DefaultConfig()), pools.Eval)
}

func TestEvaluateByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   int
		planetID int
		wantCode string
	}{
		{name: "superadmin reads any planet", userID: 1, planetID: 3},
		{name: "planetadmin reads assigned planet", userID: 2, planetID: 2},
		{name: "planetadmin denied unassigned planet", userID: 2, planetID: 3, wantCode: apperrors.CodeAccessDenied},
		{name: "viewer1 reads fixed planet", userID: 3, planetID: 1},
		{name: "viewer1 denied outside fixed set", userID: 3, planetID: 2, wantCode: apperrors.CodeAccessDenied},
		{name: "viewer2 reads second fixed planet", userID: 4, planetID: 3},
		{name: "missing planet reported as not found", userID: 1, planetID: 999, wantCode: apperrors.CodePlanetNotFound},
		{name: "unknown user", userID: 42, planetID: 1, wantCode: apperrors.CodeUserNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewEvaluateUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()), nil)

			eval, err := uc.EvaluateByID(context.Background(), tt.planetID, tt.userID)
			if tt.wantCode != "" {
				require.Error(t, err)
				appErr, ok := apperrors.IsAppError(err)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.planetID, eval.PlanetID)
			require.NotZero(t, eval.OverallScore)
			require.False(t, eval.EvaluatedAt.IsZero())
		})
	}
}

func TestEvaluateByIDDistinguishesDenialFromAbsence(t *testing.T) {
	t.Parallel()
	uc := NewEvaluateUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()), nil)

	_, err := uc.EvaluateByID(context.Background(), 2, 3) // viewer1, outside fixed set
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeAccessDenied, appErr.Code)

	_, err = uc.EvaluateByID(context.Background(), 999, 1) // superadmin, missing
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodePlanetNotFound, appErr.Code)
}

func TestFactorScoresByID(t *testing.T) {
	t.Parallel()
	uc := NewEvaluateUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()), nil)

	scores, err := uc.FactorScoresByID(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, 100.0, scores.Oxygen)
	require.Equal(t, 100.0, scores.Water)
	require.Equal(t, 100.0, scores.Atmosphere)
}

func TestRankAccessible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userID    int
		wantOrder []int
	}{
		{name: "superadmin ranks all planets", userID: 1, wantOrder: []int{1, 2, 3}},
		{name: "planetadmin ranks assigned planets", userID: 2, wantOrder: []int{1, 2}},
		{name: "viewer1 ranks fixed set", userID: 3, wantOrder: []int{1}},
		{name: "viewer2 ranks fixed set", userID: 4, wantOrder: []int{1, 3}},
		{name: "viewer ranks assignments", userID: 5, wantOrder: []int{2}},
	}

	planets := testPlanets()
	users := testUsers()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := newEvaluateUC(t, planets, users)

			ranked, err := uc.RankAccessible(context.Background(), tt.userID)
			require.NoError(t, err)

			gotOrder := make([]int, 0, len(ranked))
			for _, e := range ranked {
				gotOrder = append(gotOrder, e.PlanetID)
			}
			require.Equal(t, tt.wantOrder, gotOrder)
			for i := 1; i < len(ranked); i++ {
				require.GreaterOrEqual(t, ranked[i-1].OverallScore, ranked[i].OverallScore)
			}
		})
	}
}

func TestRankAccessibleTiesKeepStoreOrder(t *testing.T) {
	t.Parallel()
	planets := newMemPlanetStore(
		planetScoring(1, "Twin A", 21, 71),
		planetScoring(2, "Twin B", 21, 71),
		planetScoring(3, "Twin C", 21, 71),
	)
	uc := newEvaluateUC(t, planets, testUsers())

	ranked, err := uc.RankAccessible(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	require.Equal(t, []string{"Twin A", "Twin B", "Twin C"},
		[]string{ranked[0].PlanetName, ranked[1].PlanetName, ranked[2].PlanetName})
}

func TestMostHabitableAccessible(t *testing.T) {
	t.Parallel()
	uc := newEvaluateUC(t, testPlanets(), testUsers())

	best, err := uc.MostHabitableAccessible(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, best.PlanetID)
	require.Equal(t, "Terra Nova", best.PlanetName)
}

func TestMostHabitableAccessibleEmptySet(t *testing.T) {
	t.Parallel()
	users := newMemUserStore(&domain.User{ID: 9, Username: "lonely", Role: domain.RoleViewer})
	uc := newEvaluateUC(t, testPlanets(), users)

	_, err := uc.MostHabitableAccessible(context.Background(), 9)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeNoPlanetsAvailable, appErr.Code)
}

func TestEvaluateBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		userID      int
		ids         []int
		wantEvals   []int
		wantSkipped []int
	}{
		{
			name:        "duplicates collapse and denials are reported",
			userID:      3, // viewer1, fixed set {1}
			ids:         []int{1, 1, 2, 999},
			wantEvals:   []int{1},
			wantSkipped: []int{2, 999},
		},
		{
			name:        "superadmin only skips missing ids",
			userID:      1,
			ids:         []int{3, 2, 404},
			wantEvals:   []int{3, 2},
			wantSkipped: []int{404},
		},
		{
			name:        "all denied yields empty evaluations",
			userID:      5, // viewer assigned {2}
			ids:         []int{1, 3},
			wantEvals:   []int{},
			wantSkipped: []int{1, 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := newEvaluateUC(t, testPlanets(), testUsers())

			batch, err := uc.EvaluateBatch(context.Background(), tt.ids, tt.userID)
			require.NoError(t, err)

			gotEvals := make([]int, 0, len(batch.Evaluations))
			for _, e := range batch.Evaluations {
				gotEvals = append(gotEvals, e.PlanetID)
			}
			require.ElementsMatch(t, tt.wantEvals, gotEvals)
			require.Equal(t, tt.wantSkipped, batch.DeniedOrNotFoundIDs)
		})
	}
}

func TestEvaluateBatchCancelledContext(t *testing.T) {
	t.Parallel()
	uc := newEvaluateUC(t, testPlanets(), testUsers())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := uc.EvaluateBatch(ctx, []int{1, 2, 3}, 1)
	require.NoError(t, err)
	require.Empty(t, batch.Evaluations)
}

func TestPlanetList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		userID  int
		wantIDs []int
	}{
		{name: "superadmin sees all", userID: 1, wantIDs: []int{1, 2, 3}},
		{name: "planetadmin sees assigned", userID: 2, wantIDs: []int{1, 2}},
		{name: "viewer1 sees fixed set", userID: 3, wantIDs: []int{1}},
		{name: "viewer2 sees fixed set", userID: 4, wantIDs: []int{1, 3}},
		{name: "viewer sees assignments", userID: 5, wantIDs: []int{2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()))

			planets, err := uc.List(context.Background(), tt.userID)
			require.NoError(t, err)

			gotIDs := make([]int, 0, len(planets))
			for _, p := range planets {
				gotIDs = append(gotIDs, p.ID)
			}
			require.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestPlanetCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   int
		wantCode string
	}{
		{name: "superadmin creates", userID: 1},
		{name: "planetadmin creates", userID: 2},
		{name: "viewer1 denied", userID: 3, wantCode: apperrors.CodeAccessDenied},
		{name: "viewer denied", userID: 5, wantCode: apperrors.CodeAccessDenied},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()))

			created, err := uc.Create(context.Background(), tt.userID, &domain.Planet{Name: "New World"})
			if tt.wantCode != "" {
				appErr, ok := apperrors.IsAppError(err)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, created.ID)
			require.False(t, created.CreatedAt.IsZero())
		})
	}
}

func TestPlanetCreateValidation(t *testing.T) {
	t.Parallel()
	uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()))

	_, err := uc.Create(context.Background(), 1, &domain.Planet{Name: "  ", OxygenVolume: fptr(150)})
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	require.Equal(t, 400, appErr.HTTPStatus)
}

func TestPlanetUpdateMergesAbsentFields(t *testing.T) {
	t.Parallel()
	planets := testPlanets()
	uc := NewPlanetUseCase(planets, testUsers(), access.NewPolicy(access.DefaultConfig()))

	name := "Terra Nova Prime"
	updated, err := uc.Update(context.Background(), 1, 1, UpdatePlanetInput{Name: &name})
	require.NoError(t, err)

	require.Equal(t, "Terra Nova Prime", updated.Name)
	// Untouched attributes survive the partial update.
	require.NotNil(t, updated.OxygenVolume)
	require.Equal(t, 21.0, *updated.OxygenVolume)
	require.NotNil(t, updated.WaterVolume)
	require.Equal(t, 71.0, *updated.WaterVolume)
	require.True(t, updated.HasAtmosphere)
	require.NotNil(t, updated.UpdatedAt)
}

func TestPlanetUpdateAccess(t *testing.T) {
	t.Parallel()

	name := "Renamed"
	tests := []struct {
		name     string
		userID   int
		planetID int
		wantCode string
	}{
		{name: "superadmin edits any", userID: 1, planetID: 3},
		{name: "planetadmin edits assigned", userID: 2, planetID: 1},
		{name: "planetadmin denied unassigned", userID: 2, planetID: 3, wantCode: apperrors.CodeAccessDenied},
		{name: "viewer1 denied", userID: 3, planetID: 1, wantCode: apperrors.CodeAccessDenied},
		{name: "missing planet", userID: 1, planetID: 999, wantCode: apperrors.CodePlanetNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()))

			_, err := uc.Update(context.Background(), tt.planetID, tt.userID, UpdatePlanetInput{Name: &name})
			if tt.wantCode != "" {
				appErr, ok := apperrors.IsAppError(err)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPlanetDeleteDefaultScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   int
		wantCode string
	}{
		{name: "superadmin deletes", userID: 1},
		{name: "planetadmin denied by default", userID: 2, wantCode: apperrors.CodeAccessDenied},
		{name: "viewer1 denied", userID: 3, wantCode: apperrors.CodeAccessDenied},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()))

			err := uc.Delete(context.Background(), 1, tt.userID)
			if tt.wantCode != "" {
				appErr, ok := apperrors.IsAppError(err)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, appErr.Code)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPlanetDeleteWidenedScope(t *testing.T) {
	t.Parallel()
	cfg := access.DefaultConfig()
	cfg.PlanetAdminCanDelete = true
	uc := NewPlanetUseCase(testPlanets(), testUsers(), access.NewPolicy(cfg))

	require.NoError(t, uc.Delete(context.Background(), 1, 2))

	// Widened scope still honors assignments.
	err := uc.Delete(context.Background(), 3, 2)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeAccessDenied, appErr.Code)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := newMemUserStore(&domain.User{
		ID:           1,
		Username:     "superadmin",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
	})
	uc := NewUserUseCase(users, nil)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "superadmin", "password123")
		require.NoError(t, err)
		require.Equal(t, 1, user.ID)
		require.NotNil(t, user.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "superadmin", "hunter2")
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		require.Equal(t, apperrors.CodeAuthFailed, appErr.Code)
	})

	t.Run("unknown user indistinguishable from wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "nobody", "password123")
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		require.Equal(t, apperrors.CodeAuthFailed, appErr.Code)
	})
}

// loginRecorder captures RecordLogin calls on a channel so a test can
// observe bookkeeping that runs on a background worker.
type loginRecorder struct {
	*memUserStore
	recorded chan time.Time
}

func (r *loginRecorder) RecordLogin(_ context.Context, _ int, at time.Time) error {
	r.recorded <- at
	return nil
}

func TestAuthenticateRecordsLoginThroughWorkerPool(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	rec := &loginRecorder{
		memUserStore: newMemUserStore(&domain.User{
			ID:           1,
			Username:     "superadmin",
			PasswordHash: string(hash),
			Role:         domain.RoleSuperAdmin,
		}),
		recorded: make(chan time.Time, 1),
	}

	pools, err := worker.NewPools(context.Background(), worker.PoolConfig{GeneralPoolSize: 2, EvalPoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(pools.Shutdown)

	uc := NewUserUseCase(rec, pools)
	user, err := uc.Authenticate(context.Background(), "superadmin", "password123")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	select {
	case at := <-rec.recorded:
		require.False(t, at.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("login bookkeeping never reached the store")
	}
}

func TestAssignAndRemovePlanet(t *testing.T) {
	t.Parallel()
	users := testUsers()
	uc := NewUserUseCase(users, nil)

	user, err := uc.AssignPlanet(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, user.AssignedPlanetIDs.Sorted())

	// Re-assigning is a no-op.
	user, err = uc.AssignPlanet(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, user.AssignedPlanetIDs.Sorted())

	user, err = uc.RemovePlanet(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Equal(t, []int{3}, user.AssignedPlanetIDs.Sorted())

	// Removing an unassigned planet is a no-op.
	user, err = uc.RemovePlanet(context.Background(), 5, 42)
	require.NoError(t, err)
	require.Equal(t, []int{3}, user.AssignedPlanetIDs.Sorted())

	_, err = uc.AssignPlanet(context.Background(), 99, 1)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeUserNotFound, appErr.Code)
}

// failingUserStore simulates a user store whose backend is down.
type failingUserStore struct {
	err error
}

func (f failingUserStore) GetUser(context.Context, int) (*domain.User, error) {
	return nil, f.err
}

func TestUserStoreFailureIsNotMistakenForMissingUser(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	users := failingUserStore{err: storeErr}
	policy := access.NewPolicy(access.DefaultConfig())
	evalUC := NewEvaluateUseCase(testPlanets(), users, policy, nil)
	planetUC := NewPlanetUseCase(testPlanets(), users, policy)
	ctx := context.Background()

	calls := map[string]func() error{
		"EvaluateByID": func() error {
			_, err := evalUC.EvaluateByID(ctx, 1, 1)
			return err
		},
		"FactorScoresByID": func() error {
			_, err := evalUC.FactorScoresByID(ctx, 1, 1)
			return err
		},
		"RankAccessible": func() error {
			_, err := evalUC.RankAccessible(ctx, 1)
			return err
		},
		"EvaluateBatch": func() error {
			_, err := evalUC.EvaluateBatch(ctx, []int{1}, 1)
			return err
		},
		"AccessibleIDs": func() error {
			_, err := evalUC.AccessibleIDs(ctx, 1)
			return err
		},
		"List": func() error {
			_, err := planetUC.List(ctx, 1)
			return err
		},
		"GetByID": func() error {
			_, err := planetUC.GetByID(ctx, 1, 1)
			return err
		},
		"Create": func() error {
			_, err := planetUC.Create(ctx, 1, planetScoring(0, "New", 21, 71))
			return err
		},
		"Update": func() error {
			_, err := planetUC.Update(ctx, 1, 1, UpdatePlanetInput{})
			return err
		},
		"Delete": func() error {
			return planetUC.Delete(ctx, 1, 1)
		},
	}

	for name, call := range calls {
		name, call := name, call
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := call()
			require.Error(t, err)
			// The outage propagates; it never turns into a client 404.
			require.ErrorIs(t, err, storeErr)
			if appErr, ok := apperrors.IsAppError(err); ok {
				require.NotEqual(t, apperrors.CodeUserNotFound, appErr.Code)
			}
		})
	}
}

func TestGetUserNotFoundStillMapsToUserNotFound(t *testing.T) {
	t.Parallel()

	uc := NewEvaluateUseCase(testPlanets(), testUsers(), access.NewPolicy(access.DefaultConfig()), nil)
	_, err := uc.EvaluateByID(context.Background(), 1, 42)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeUserNotFound, appErr.Code)
}
