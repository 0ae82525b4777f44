// Package handlers implements the HTTP handlers for the Planet Evaluate
// service.
//
// Handlers bind and validate input, call a use case, and write the
// response. Error responses flow through middleware.ErrorHandler via
// c.Error; handlers never build error JSON themselves.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"planet-eval.io/planeteval/internal/api/middleware"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/pkg/worker"
	"planet-eval.io/planeteval/internal/usecase"
)

// Server holds all API handlers.
type Server struct {
	pool       *pgxpool.Pool
	workers    *worker.Pools
	jwtCfg     middleware.JWTConfig
	userUC     *usecase.UserUseCase
	planetUC   *usecase.PlanetUseCase
	evalUC     *usecase.EvaluateUseCase
	maxBatchID int
}

// ServerDeps holds all dependencies for creating a Server.
// Manual DI, no Wire/Dig.
type ServerDeps struct {
	Pool        *pgxpool.Pool
	Workers     *worker.Pools
	JWTCfg      middleware.JWTConfig
	UserUC      *usecase.UserUseCase
	PlanetUC    *usecase.PlanetUseCase
	EvalUC      *usecase.EvaluateUseCase
	MaxBatchIDs int
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	maxBatch := deps.MaxBatchIDs
	if maxBatch <= 0 {
		maxBatch = usecase.DefaultMaxBatchIDs
	}
	return &Server{
		pool:       deps.Pool,
		workers:    deps.Workers,
		jwtCfg:     deps.JWTCfg,
		userUC:     deps.UserUC,
		planetUC:   deps.PlanetUC,
		evalUC:     deps.EvalUC,
		maxBatchID: maxBatch,
	}
}

// currentUserID extracts the authenticated user id from the request
// context. Zero means the JWT middleware did not run on this route.
func currentUserID(c *gin.Context) (int, bool) {
	id := middleware.GetUserID(c.Request.Context())
	return id, id != 0
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.New(apperrors.CodeValidationFailed,
			"invalid "+name+" parameter", http.StatusBadRequest)
	}
	return id, nil
}

// abortUnauthorized reports a request that reached a protected handler
// without an authenticated user.
func abortUnauthorized(c *gin.Context) {
	_ = c.Error(apperrors.Unauthorized("UNAUTHORIZED", "authentication required"))
	c.Abort()
}
