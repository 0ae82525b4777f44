// Package postgres implements the persistence contracts on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
)

const planetColumns = `id, name, type, mass, radius, distance_from_sun, number_of_moons,
	has_atmosphere, oxygen_volume, water_volume, hardness_of_rock, threatening_creature,
	description, created_at, updated_at`

// PlanetRepository is the pgx-backed planet store.
type PlanetRepository struct {
	pool *pgxpool.Pool
}

// NewPlanetRepository creates a new PlanetRepository.
func NewPlanetRepository(pool *pgxpool.Pool) *PlanetRepository {
	return &PlanetRepository{pool: pool}
}

func scanPlanet(row pgx.Row) (*domain.Planet, error) {
	var p domain.Planet
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.Mass, &p.Radius, &p.DistanceFromSun, &p.NumberOfMoons,
		&p.HasAtmosphere, &p.OxygenVolume, &p.WaterVolume, &p.HardnessOfRock, &p.ThreateningCreature,
		&p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlanet loads one planet by id.
func (r *PlanetRepository) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+planetColumns+` FROM planets WHERE id = $1`, id)
	p, err := scanPlanet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("planet %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get planet %d: %w", id, err)
	}
	return p, nil
}

// GetAllPlanetIDs returns the ids of every stored planet.
func (r *PlanetRepository) GetAllPlanetIDs(ctx context.Context) (domain.PlanetIDSet, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list planet ids: %w", err)
	}
	defer rows.Close()

	ids := domain.NewPlanetIDSet()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan planet id: %w", err)
		}
		ids.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planet ids: %w", err)
	}
	return ids, nil
}

// ListPlanets loads the planets in ids, ordered by id.
func (r *PlanetRepository) ListPlanets(ctx context.Context, ids domain.PlanetIDSet) ([]*domain.Planet, error) {
	if len(ids) == 0 {
		return []*domain.Planet{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+planetColumns+` FROM planets WHERE id = ANY($1) ORDER BY id`, ids.Sorted())
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	defer rows.Close()

	planets := make([]*domain.Planet, 0, len(ids))
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planet: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	return planets, nil
}

// CreatePlanet inserts a planet and returns the stored row.
func (r *PlanetRepository) CreatePlanet(ctx context.Context, p *domain.Planet) (*domain.Planet, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO planets (name, type, mass, radius, distance_from_sun, number_of_moons,
			has_atmosphere, oxygen_volume, water_volume, hardness_of_rock, threatening_creature, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+planetColumns,
		p.Name, p.Type, p.Mass, p.Radius, p.DistanceFromSun, p.NumberOfMoons,
		p.HasAtmosphere, p.OxygenVolume, p.WaterVolume, p.HardnessOfRock, p.ThreateningCreature, p.Description,
	)
	created, err := scanPlanet(row)
	if err != nil {
		return nil, fmt.Errorf("create planet: %w", err)
	}
	return created, nil
}

// UpdatePlanet stores a fully merged planet row.
func (r *PlanetRepository) UpdatePlanet(ctx context.Context, p *domain.Planet) (*domain.Planet, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE planets SET name = $2, type = $3, mass = $4, radius = $5, distance_from_sun = $6,
			number_of_moons = $7, has_atmosphere = $8, oxygen_volume = $9, water_volume = $10,
			hardness_of_rock = $11, threatening_creature = $12, description = $13, updated_at = $14
		WHERE id = $1
		RETURNING `+planetColumns,
		p.ID, p.Name, p.Type, p.Mass, p.Radius, p.DistanceFromSun,
		p.NumberOfMoons, p.HasAtmosphere, p.OxygenVolume, p.WaterVolume,
		p.HardnessOfRock, p.ThreateningCreature, p.Description, time.Now().UTC(),
	)
	updated, err := scanPlanet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("planet %d: %w", p.ID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("update planet %d: %w", p.ID, err)
	}
	return updated, nil
}

// DeletePlanet removes a planet by id.
func (r *PlanetRepository) DeletePlanet(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM planets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete planet %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("planet %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
