package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/container"
	handlers "github.com/devhubhq/devhub-api/internal/interface/http"
	"github.com/devhubhq/devhub-api/internal/interface/middleware"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// UserModule wires profile, avatar, and administration routes.
type UserModule struct {
	Handler  *handlers.UserHandler
	Projects *handlers.ProjectHandler
	JWT      *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, projects *handlers.ProjectHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Projects: projects, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Public profile reads
	rg.GET("/users/:id", m.Handler.Get)
	rg.GET("/users/:id/projects", m.Projects.ListByOwner)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/users/:id", m.Handler.Update)
		auth.POST("/users/me/avatar",
			middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.UploadAvatar)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.GET("/users", m.Handler.List)
		admin.PUT("/users/:id/role", m.Handler.ChangeRole)
	}
}
