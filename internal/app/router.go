package app

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"planet-eval.io/planeteval/internal/api/handlers"
	"planet-eval.io/planeteval/internal/api/middleware"
	"planet-eval.io/planeteval/internal/config"
	"planet-eval.io/planeteval/internal/domain"
)

// Public routes that do NOT require JWT authentication.
var publicPrefixes = []string{
	"/api/v1/auth/login",
	"/api/v1/health/",
}

// adminPrefixes are routes reserved for the superadmin role.
var adminPrefixes = []string{
	"/api/v1/auth/users",
}

func newRouter(cfg *config.Config, server *handlers.Server, jwtCfg middleware.JWTConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.Server))
	router.Use(jwtSkipPublic(jwtCfg))
	router.Use(adminRoleGate())

	registerRoutes(router, server)
	return router
}

func registerRoutes(router *gin.Engine, server *handlers.Server) {
	v1 := router.Group("/api/v1")

	health := v1.Group("/health")
	health.GET("/live", server.GetLiveness)
	health.GET("/ready", server.GetReadiness)

	auth := v1.Group("/auth")
	auth.POST("/login", server.Login)
	auth.GET("/me", server.GetCurrentUser)
	auth.GET("/users", server.ListUsers)
	auth.GET("/users/:id", server.GetUser)
	auth.POST("/users/:id/assign-planet/:planetId", server.AssignPlanet)
	auth.DELETE("/users/:id/remove-planet/:planetId", server.RemovePlanet)

	planets := v1.Group("/planets")
	planets.GET("", server.ListPlanets)
	planets.POST("", server.CreatePlanet)
	planets.GET("/:id", server.GetPlanet)
	planets.PUT("/:id", server.UpdatePlanet)
	planets.DELETE("/:id", server.DeletePlanet)

	habitability := v1.Group("/habitability")
	habitability.GET("/evaluate/:id", server.EvaluatePlanet)
	habitability.GET("/scores/:id", server.GetFactorScores)
	habitability.GET("/rank", server.RankPlanets)
	habitability.GET("/most-habitable", server.GetMostHabitable)
	habitability.POST("/evaluate-batch", server.EvaluateBatch)
}

// corsMiddleware builds the CORS policy from server config.
func corsMiddleware(cfg config.ServerConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	switch {
	case cfg.UnsafeAllowAllOrigins:
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	case len(cfg.AllowedOrigins) > 0:
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	default:
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cors.New(corsCfg)
}

// jwtSkipPublic returns middleware that applies JWT auth only on non-public routes.
func jwtSkipPublic(jwtCfg middleware.JWTConfig) gin.HandlerFunc {
	jwtMw := middleware.JWTAuth(jwtCfg)
	return func(c *gin.Context) {
		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		jwtMw(c)
	}
}

// adminRoleGate returns middleware enforcing superadmin on the user
// administration endpoints.
func adminRoleGate() gin.HandlerFunc {
	adminMw := middleware.RequireRole(domain.RoleSuperAdmin)
	return func(c *gin.Context) {
		for _, prefix := range adminPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				adminMw(c)
				return
			}
		}
		c.Next()
	}
}
