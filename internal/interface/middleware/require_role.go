package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/pkg/response"
)

// RequireAdmin rejects requests whose token does not carry the Admin role.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.ParseRole(c.GetString("userRole"))
		if role != entity.RoleAdmin {
			response.Error[any](c, http.StatusForbidden, "admin role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
