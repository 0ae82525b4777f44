// Package app is the composition root. Bootstrap stays orchestration-only.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"planet-eval.io/planeteval/internal/access"
	"planet-eval.io/planeteval/internal/api/handlers"
	"planet-eval.io/planeteval/internal/api/middleware"
	"planet-eval.io/planeteval/internal/config"
	"planet-eval.io/planeteval/internal/infrastructure"
	"planet-eval.io/planeteval/internal/pkg/worker"
	"planet-eval.io/planeteval/internal/repository/postgres"
	"planet-eval.io/planeteval/internal/usecase"
)

// Application holds composed application dependencies.
type Application struct {
	Config *config.Config
	Router *gin.Engine
	DB     *infrastructure.Database
	Pools  *worker.Pools
}

// Bootstrap initializes all dependencies using manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	db, err := infrastructure.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	pools, err := worker.NewPools(ctx, worker.PoolConfig{
		GeneralPoolSize: cfg.Worker.GeneralPoolSize,
		EvalPoolSize:    cfg.Worker.EvalPoolSize,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	planetRepo := postgres.NewPlanetRepository(db.Pool)
	userRepo := postgres.NewUserRepository(db.Pool)

	policy := access.NewPolicy(access.Config{
		Viewer1PlanetIDs:     cfg.Policy.Viewer1PlanetIDs,
		Viewer2PlanetIDs:     cfg.Policy.Viewer2PlanetIDs,
		ViewerFixedSets:      cfg.Policy.ViewerFixedSets,
		PlanetAdminCanDelete: cfg.Policy.PlanetAdminCanDelete,
	})

	jwtCfg := middleware.JWTConfig{
		SigningKey: []byte(cfg.Security.JWTSecret),
		Issuer:     "planeteval",
		ExpiresIn:  cfg.Security.TokenTTL,
	}

	server := handlers.NewServer(handlers.ServerDeps{
		Pool:        db.Pool,
		Workers:     pools,
		JWTCfg:      jwtCfg,
		UserUC:      usecase.NewUserUseCase(userRepo, pools),
		PlanetUC:    usecase.NewPlanetUseCase(planetRepo, userRepo, policy),
		EvalUC:      usecase.NewEvaluateUseCase(planetRepo, userRepo, policy, pools.Eval),
		MaxBatchIDs: cfg.Batch.MaxIDs,
	})

	return &Application{
		Config: cfg,
		Router: newRouter(cfg, server, jwtCfg),
		DB:     db,
		Pools:  pools,
	}, nil
}
