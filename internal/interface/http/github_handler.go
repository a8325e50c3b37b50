package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/pkg/helpers"
	"github.com/devhubhq/devhub-api/pkg/response"
	"github.com/devhubhq/devhub-api/pkg/validation"
)

const oauthStateTTL = 10 * time.Minute

// GitHubHandler drives the OAuth linking flow and repository import.
// The state parameter is a one-time value tied to the initiating user in
// Redis, so the public callback can recover who started the flow.
type GitHubHandler struct {
	Svc    *application.GitHubService
	RDB    *redis.Client
	Logger *logrus.Logger
}

func NewGitHubHandler(svc *application.GitHubService, rdb *redis.Client, logger *logrus.Logger) *GitHubHandler {
	return &GitHubHandler{Svc: svc, RDB: rdb, Logger: logger}
}

func stateKey(state string) string { return "github:oauth:state:" + state }

// Authorize GET /api/auth/github (auth required)
// Redirects the browser to the GitHub consent page.
func (h *GitHubHandler) Authorize(c *gin.Context) {
	state, err := helpers.GenOpaqueToken()
	if err != nil {
		fail(c, err)
		return
	}
	userID := c.GetString("userID")
	if err := helpers.RedisSetJSON(c.Request.Context(), h.RDB, stateKey(state), userID, oauthStateTTL); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.Svc.AuthorizeURL(state))
}

// Callback GET /api/auth/github/callback?code=...&state=...
// Public: GitHub redirects the browser here. The state must match a pending
// flow; it is consumed on first use.
func (h *GitHubHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error[any](c, http.StatusBadRequest, "missing code or state", nil)
		return
	}

	ctx := c.Request.Context()
	var userID string
	ok, err := helpers.RedisGetJSON(ctx, h.RDB, stateKey(state), &userID)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok || userID == "" {
		response.Error[any](c, http.StatusBadRequest, "unknown or expired state", nil)
		return
	}
	_ = helpers.RedisDel(ctx, h.RDB, stateKey(state))

	ghUser, err := h.Svc.HandleCallback(ctx, userID, code)
	if err != nil {
		h.Logger.WithError(err).Warn("github oauth callback failed")
		response.Error[any](c, http.StatusBadRequest, "github authorization failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"login":      ghUser.Login,
		"name":       ghUser.Name,
		"avatar_url": ghUser.AvatarURL,
		"html_url":   ghUser.HTMLURL,
	}, "github account linked", nil)
}

// Repos GET /api/github/repos (auth required)
func (h *GitHubHandler) Repos(c *gin.Context) {
	page, size := pageParams(c)
	repos, err := h.Svc.ListRepos(c.Request.Context(), c.GetString("userID"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, repos, "ok", pageMeta(page, size, len(repos)))
}

type importRepoRequest struct {
	Owner string `json:"owner" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// Import POST /api/github/import (auth required)
// Creates a showcase project from one of the linked account's repositories.
func (h *GitHubHandler) Import(c *gin.Context) {
	var req importRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	repo, err := h.Svc.ImportRepo(c.Request.Context(), c.GetString("userID"), req.Owner, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, repo, "repository imported", nil)
}
