package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/usecase"
)

// conflateReadDenial maps an access denial on a read path to the same
// 404 a missing planet produces, so clients cannot probe which ids
// exist.
func conflateReadDenial(err error, planetID int) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.CodeAccessDenied {
		return apperrors.ErrPlanetNotFoundOrDenied(planetID)
	}
	return err
}

type createPlanetRequest struct {
	Name                string   `json:"name" binding:"required"`
	Type                *string  `json:"type"`
	Mass                *float64 `json:"mass"`
	Radius              *float64 `json:"radius"`
	DistanceFromSun     *float64 `json:"distance_from_sun"`
	NumberOfMoons       *int     `json:"number_of_moons"`
	HasAtmosphere       bool     `json:"has_atmosphere"`
	OxygenVolume        *float64 `json:"oxygen_volume"`
	WaterVolume         *float64 `json:"water_volume"`
	HardnessOfRock      *int     `json:"hardness_of_rock"`
	ThreateningCreature *int     `json:"threatening_creature"`
	Description         *string  `json:"description"`
}

func (r createPlanetRequest) toDomain() *domain.Planet {
	return &domain.Planet{
		Name:                r.Name,
		Type:                r.Type,
		Mass:                r.Mass,
		Radius:              r.Radius,
		DistanceFromSun:     r.DistanceFromSun,
		NumberOfMoons:       r.NumberOfMoons,
		HasAtmosphere:       r.HasAtmosphere,
		OxygenVolume:        r.OxygenVolume,
		WaterVolume:         r.WaterVolume,
		HardnessOfRock:      r.HardnessOfRock,
		ThreateningCreature: r.ThreateningCreature,
		Description:         r.Description,
	}
}

// ListPlanets handles GET /planets. The result is already filtered to
// the caller's accessible set.
func (s *Server) ListPlanets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	planets, err := s.planetUC.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, planets)
}

// GetPlanet handles GET /planets/:id.
func (s *Server) GetPlanet(c *gin.Context) {
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

	planet, err := s.planetUC.GetByID(c.Request.Context(), planetID, userID)
	if err != nil {
		_ = c.Error(conflateReadDenial(err, planetID))
		return
	}
	c.JSON(http.StatusOK, planet)
}

// CreatePlanet handles POST /planets.
func (s *Server) CreatePlanet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req createPlanetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "invalid planet payload"))
		return
	}

	created, err := s.planetUC.Create(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePlanet handles PUT /planets/:id. Fields absent from the body
// keep their stored values.
func (s *Server) UpdatePlanet(c *gin.Context) {
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

	var input usecase.UpdatePlanetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "invalid planet payload"))
		return
	}

	updated, err := s.planetUC.Update(c.Request.Context(), planetID, userID, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePlanet handles DELETE /planets/:id.
func (s *Server) DeletePlanet(c *gin.Context) {
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

	if err := s.planetUC.Delete(c.Request.Context(), planetID, userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
