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

const userColumns = `id, username, email, password_hash, first_name, last_name, role,
	assigned_planet_ids, created_at, last_login`

// UserRepository is the pgx-backed user store.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u           domain.User
		role        string
		assignments string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role,
		&assignments, &u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.ParseRole(role)
	u.AssignedPlanetIDs = domain.DecodeAssignedPlanetIDs(assignments)
	return &u, nil
}

// GetUser loads one user by id.
func (r *UserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByUsername loads one user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

// ListUsers returns all users ordered by id.
func (r *UserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user and returns the stored row. The seed command
// uses this; the API has no user creation endpoint.
func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, first_name, last_name, role, assigned_planet_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Role.String(), domain.EncodeAssignedPlanetIDs(u.AssignedPlanetIDs),
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return created, nil
}

// UpdateAssignments replaces a user's assigned planet set.
func (r *UserRepository) UpdateAssignments(ctx context.Context, userID int, ids domain.PlanetIDSet) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET assigned_planet_ids = $2 WHERE id = $1`,
		userID, domain.EncodeAssignedPlanetIDs(ids))
	if err != nil {
		return fmt.Errorf("update assignments for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// RecordLogin stamps the user's last login time.
func (r *UserRepository) RecordLogin(ctx context.Context, userID int, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, userID, at)
	if err != nil {
		return fmt.Errorf("record login for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// CountUsers reports how many users exist. Seeding is skipped on a
// non-empty table.
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
