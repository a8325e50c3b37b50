package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/pkg/response"
	"github.com/devhubhq/devhub-api/pkg/validation"
)

type ProjectHandler struct {
	Svc *application.ProjectService
}

func NewProjectHandler(svc *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{Svc: svc}
}

type projectRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	GitHubURL   string   `json:"github_url" binding:"required,url"`
	DiscordURL  string   `json:"discord_url" binding:"omitempty,url"`
	Tags        []string `json:"tags" binding:"max=10,dive,min=1,max=50"`
}

// Create POST /api/projects (auth required)
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	project, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		GitHubURL:   req.GitHubURL,
		DiscordURL:  req.DiscordURL,
		Tags:        req.Tags,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toProjectResponse(project), "project created", nil)
}

// Get GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProjectResponse(project), "ok", nil)
}

// List GET /api/projects?search=...&tags=a,b&page=1&size=20
func (h *ProjectHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	var tags []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	projects, total, err := h.Svc.List(c.Request.Context(), page, size, c.Query("search"), tags)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProjectResponses(projects), "ok", pageMeta(page, size, total))
}

// ListByOwner GET /api/users/:id/projects
func (h *ProjectHandler) ListByOwner(c *gin.Context) {
	page, size := pageParams(c)
	projects, total, err := h.Svc.ListByOwner(c.Request.Context(), c.Param("id"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProjectResponses(projects), "ok", pageMeta(page, size, total))
}

// Update PUT /api/projects/:id (owner or admin)
func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	project, err := h.Svc.Update(c.Request.Context(),
		c.GetString("userID"), entity.ParseRole(c.GetString("userRole")),
		c.Param("id"), application.ProjectInput{
			Title:       req.Title,
			Description: req.Description,
			GitHubURL:   req.GitHubURL,
			DiscordURL:  req.DiscordURL,
			Tags:        req.Tags,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProjectResponse(project), "project updated", nil)
}

// Delete DELETE /api/projects/:id (owner or admin)
func (h *ProjectHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(),
		c.GetString("userID"), entity.ParseRole(c.GetString("userRole")), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "project deleted", nil)
}
