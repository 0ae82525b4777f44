package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planet-eval.io/planeteval/internal/api/middleware"
	"planet-eval.io/planeteval/internal/domain"
	apperrors "planet-eval.io/planeteval/internal/pkg/errors"
	"planet-eval.io/planeteval/internal/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Login handles POST /auth/login.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "username and password are required"))
		return
	}

	user, err := s.userUC.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login failed: invalid credentials")
		_ = c.Error(err)
		return
	}

	token, expiresAt, err := middleware.GenerateToken(s.jwtCfg, user.ID, user.Username, user.Role.String())
	if err != nil {
		logger.Error("failed to generate token", zap.Error(err))
		_ = c.Error(apperrors.Internal("INTERNAL_ERROR", "failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      user,
	})
}

// GetCurrentUser handles GET /auth/me.
func (s *Server) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	user, err := s.userUC.GetByID(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /auth/users. SuperAdmin only, enforced by the
// router's role gate.
func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.userUC.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /auth/users/:id. SuperAdmin only.
func (s *Server) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := s.userUC.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AssignPlanet handles POST /auth/users/:id/assign-planet/:planetId.
// SuperAdmin only.
func (s *Server) AssignPlanet(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	planetID, err := pathID(c, "planetId")
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := s.userUC.AssignPlanet(c.Request.Context(), userID, planetID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RemovePlanet handles DELETE /auth/users/:id/remove-planet/:planetId.
// SuperAdmin only.
func (s *Server) RemovePlanet(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	planetID, err := pathID(c, "planetId")
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := s.userUC.RemovePlanet(c.Request.Context(), userID, planetID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
