package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planet-eval.io/planeteval/internal/domain"
)

// RequireRole returns middleware that admits only the listed roles.
// It runs after JWTAuth, which put the role name into the context.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := domain.ParseRole(GetRole(c.Request.Context()))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "FORBIDDEN",
				"message": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
