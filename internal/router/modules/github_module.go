package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/container"
	handlers "github.com/devhubhq/devhub-api/internal/interface/http"
	"github.com/devhubhq/devhub-api/internal/interface/middleware"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// GitHubModule wires the OAuth linking flow and repository import.
// The callback is public because GitHub redirects the browser there; the
// state value ties it back to the initiating user.
type GitHubModule struct {
	Handler *handlers.GitHubHandler
	JWT     *helpers.JWTManager
}

func NewGitHubModule(h *handlers.GitHubHandler, jwt *helpers.JWTManager) *GitHubModule {
	return &GitHubModule{Handler: h, JWT: jwt}
}

func (m *GitHubModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	callbackLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/auth/github/callback", callbackLimiter, m.Handler.Callback)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/github", m.Handler.Authorize)
		auth.GET("/github/repos", m.Handler.Repos)
		auth.POST("/github/import", m.Handler.Import)
	}
}
