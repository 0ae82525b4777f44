package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
)

type batchEvaluateRequest struct {
	PlanetIDs []int `json:"planet_ids" binding:"required"`
}

// EvaluatePlanet handles GET /habitability/evaluate/:id.
func (s *Server) EvaluatePlanet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	planetID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	eval, err := s.evalUC.EvaluateByID(c.Request.Context(), planetID, userID)
	if err != nil {
		_ = c.Error(conflateReadDenial(err, planetID))
		return
	}
	c.JSON(http.StatusOK, eval)
}

// GetFactorScores handles GET /habitability/scores/:id. It returns only
// the factor sub-scores without the evaluation envelope.
func (s *Server) GetFactorScores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	planetID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	scores, err := s.evalUC.FactorScoresByID(c.Request.Context(), planetID, userID)
	if err != nil {
		_ = c.Error(conflateReadDenial(err, planetID))
		return
	}
	c.JSON(http.StatusOK, scores)
}

// RankPlanets handles GET /habitability/rank. Planets the caller cannot
// read never appear in the ranking.
func (s *Server) RankPlanets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	ranked, err := s.evalUC.RankAccessible(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}

// GetMostHabitable handles GET /habitability/most-habitable.
func (s *Server) GetMostHabitable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	best, err := s.evalUC.MostHabitableAccessible(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, best)
}

// EvaluateBatch handles POST /habitability/evaluate-batch.
func (s *Server) EvaluateBatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req batchEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "planet_ids is required"))
		return
	}
	if len(req.PlanetIDs) == 0 {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeBatchEmpty, "planet_ids must not be empty"))
		return
	}
	if len(req.PlanetIDs) > s.maxBatchID {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeBatchLimitExceeded,
			fmt.Sprintf("batch size %d exceeds limit of %d ids", len(req.PlanetIDs), s.maxBatchID)))
		return
	}

	batch, err := s.evalUC.EvaluateBatch(c.Request.Context(), req.PlanetIDs, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, batch)
}
