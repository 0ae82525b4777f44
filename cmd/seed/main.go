// Package main seeds the database with default users and sample planets.
//
// Seeding is idempotent: users are only created when the users table is
// empty, planets only when the planets table is empty. Run it once after
// the first deployment, or rerun it safely at any time.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"planet-eval.io/planeteval/internal/config"
	"planet-eval.io/planeteval/internal/domain"
	"planet-eval.io/planeteval/internal/infrastructure"
	"planet-eval.io/planeteval/internal/pkg/logger"
	"planet-eval.io/planeteval/internal/repository/postgres"
)

//go:embed planets.yaml
var planetFixtures []byte

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := infrastructure.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Starting data seeding...")

	if err := seedPlanets(ctx, postgres.NewPlanetRepository(db.Pool)); err != nil {
		return fmt.Errorf("seed planets: %w", err)
	}
	if err := seedUsers(ctx, postgres.NewUserRepository(db.Pool)); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	logger.Info("Data seeding completed successfully")
	return nil
}

type planetFixture struct {
	Name                string   `yaml:"name"`
	Type                *string  `yaml:"type"`
	Mass                *float64 `yaml:"mass"`
	Radius              *float64 `yaml:"radius"`
	DistanceFromSun     *float64 `yaml:"distance_from_sun"`
	NumberOfMoons       *int     `yaml:"number_of_moons"`
	HasAtmosphere       bool     `yaml:"has_atmosphere"`
	OxygenVolume        *float64 `yaml:"oxygen_volume"`
	WaterVolume         *float64 `yaml:"water_volume"`
	HardnessOfRock      *int     `yaml:"hardness_of_rock"`
	ThreateningCreature *int     `yaml:"threatening_creature"`
	Description         *string  `yaml:"description"`
}

func (f planetFixture) toDomain() *domain.Planet {
	return &domain.Planet{
		Name:                f.Name,
		Type:                f.Type,
		Mass:                f.Mass,
		Radius:              f.Radius,
		DistanceFromSun:     f.DistanceFromSun,
		NumberOfMoons:       f.NumberOfMoons,
		HasAtmosphere:       f.HasAtmosphere,
		OxygenVolume:        f.OxygenVolume,
		WaterVolume:         f.WaterVolume,
		HardnessOfRock:      f.HardnessOfRock,
		ThreateningCreature: f.ThreateningCreature,
		Description:         f.Description,
	}
}

// seedPlanets loads the embedded fixture file and inserts its planets.
// Skipped entirely when any planet already exists, so reruns never
// duplicate rows or disturb edited data.
func seedPlanets(ctx context.Context, repo *postgres.PlanetRepository) error {
	existing, err := repo.GetAllPlanetIDs(ctx)
	if err != nil {
		return fmt.Errorf("check existing planets: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Planets already present, skipping", zap.Int("count", len(existing)))
		return nil
	}

	var fixtures struct {
		Planets []planetFixture `yaml:"planets"`
	}
	if err := yaml.Unmarshal(planetFixtures, &fixtures); err != nil {
		return fmt.Errorf("parse planet fixtures: %w", err)
	}

	for _, f := range fixtures.Planets {
		p := f.toDomain()
		if err := p.Validate(); err != nil {
			return fmt.Errorf("fixture %q: %w", f.Name, err)
		}
		created, err := repo.CreatePlanet(ctx, p)
		if err != nil {
			return fmt.Errorf("create planet %q: %w", f.Name, err)
		}
		logger.Info("Seeded planet", zap.Int("id", created.ID), zap.String("name", created.Name))
	}
	return nil
}

type defaultUser struct {
	Username          string
	Email             string
	FirstName         string
	LastName          string
	Role              domain.Role
	AssignedPlanetIDs []int
}

func defaultUsers() []defaultUser {
	return []defaultUser{
		{
			Username: "superadmin", Email: "superadmin@localhost",
			FirstName: "Super", LastName: "Admin",
			Role: domain.RoleSuperAdmin,
		},
		{
			Username: "planetadmin", Email: "planetadmin@localhost",
			FirstName: "Planet", LastName: "Admin",
			Role:              domain.RolePlanetAdmin,
			AssignedPlanetIDs: []int{1, 2, 3},
		},
		{
			Username: "viewer1", Email: "viewer1@localhost",
			FirstName: "Viewer", LastName: "One",
			Role: domain.RoleViewer1,
		},
		{
			Username: "viewer2", Email: "viewer2@localhost",
			FirstName: "Viewer", LastName: "Two",
			Role: domain.RoleViewer2,
		},
	}
}

// seedUsers creates the four default accounts, all with the password
// "password123". Skipped when any user already exists.
func seedUsers(ctx context.Context, repo *postgres.UserRepository) error {
	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info("Users already present, skipping", zap.Int("count", count))
		return nil
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	hash := string(hashBytes)

	for _, du := range defaultUsers() {
		u := &domain.User{
			Username:          du.Username,
			Email:             du.Email,
			PasswordHash:      hash,
			FirstName:         du.FirstName,
			LastName:          du.LastName,
			Role:              du.Role,
			AssignedPlanetIDs: domain.NewPlanetIDSet(du.AssignedPlanetIDs...),
		}
		created, err := repo.CreateUser(ctx, u)
		if err != nil {
			return fmt.Errorf("create user %q: %w", du.Username, err)
		}
		logger.Info("Seeded user",
			zap.Int("id", created.ID),
			zap.String("username", created.Username),
			zap.String("role", created.Role.String()),
		)
	}
	return nil
}
