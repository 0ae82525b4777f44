// Package infrastructure provides database and connection pool setup.
package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"planet-eval.io/planeteval/internal/config"
	"planet-eval.io/planeteval/internal/pkg/logger"
)

// Database wraps the shared pgx connection pool. All repositories run on
// this single pool; never open a second one against the same database.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDatabase creates the connection pool and verifies connectivity.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = time.Minute

	// Set UTC timezone on each new connection
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET timezone = 'UTC'")
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Database connection pool created",
		zap.Int32("max_conns", cfg.MaxConns),
		zap.Int32("min_conns", cfg.MinConns),
	)

	return &Database{Pool: pool}, nil
}

// schemaDDL creates the tables on first boot. Statements are idempotent
// so AutoMigrate is safe to run on every start in development.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS planets (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(50),
		mass DOUBLE PRECISION,
		radius DOUBLE PRECISION,
		distance_from_sun DOUBLE PRECISION,
		number_of_moons INTEGER,
		has_atmosphere BOOLEAN NOT NULL DEFAULT FALSE,
		oxygen_volume DOUBLE PRECISION,
		water_volume DOUBLE PRECISION,
		hardness_of_rock INTEGER,
		threatening_creature INTEGER,
		description VARCHAR(1000),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		role VARCHAR(32) NOT NULL,
		assigned_planet_ids TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_username ON users (username)`,
}

// AutoMigrate creates the schema. Development convenience; production
// deployments manage the schema out of band.
func (d *Database) AutoMigrate(ctx context.Context) error {
	logger.Info("Running auto-migration...")
	for _, stmt := range schemaDDL {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	logger.Info("Auto-migration completed")
	return nil
}

// Close closes the connection pool gracefully.
func (d *Database) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}
