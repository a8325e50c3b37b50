package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/container"
	handlers "github.com/devhubhq/devhub-api/internal/interface/http"
	"github.com/devhubhq/devhub-api/internal/interface/middleware"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// ProjectModule wires project browsing, publishing, tags, and comments.
// Reads are public; writes require a verified, authenticated user.
type ProjectModule struct {
	Projects *handlers.ProjectHandler
	Tags     *handlers.TagHandler
	Comments *handlers.CommentHandler
	JWT      *helpers.JWTManager
}

func NewProjectModule(p *handlers.ProjectHandler, t *handlers.TagHandler, c *handlers.CommentHandler, jwt *helpers.JWTManager) *ProjectModule {
	return &ProjectModule{Projects: p, Tags: t, Comments: c, JWT: jwt}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	browseLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/projects", browseLimiter, m.Projects.List)
	rg.GET("/projects/:id", browseLimiter, m.Projects.Get)
	rg.GET("/projects/:id/comments", browseLimiter, m.Comments.List)
	rg.GET("/tags", browseLimiter, m.Tags.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/projects", m.Projects.Create)
		auth.PUT("/projects/:id", m.Projects.Update)
		auth.DELETE("/projects/:id", m.Projects.Delete)

		auth.POST("/projects/:id/comments", m.Comments.Create)
		auth.PUT("/comments/:id", m.Comments.Update)
		auth.DELETE("/comments/:id", m.Comments.Delete)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.POST("/tags", m.Tags.Create)
		admin.DELETE("/tags/:id", m.Tags.Delete)
	}
}
