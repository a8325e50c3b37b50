package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/pkg/response"
	"github.com/devhubhq/devhub-api/pkg/validation"
)

type TagHandler struct {
	Svc *application.TagService
}

func NewTagHandler(svc *application.TagService) *TagHandler {
	return &TagHandler{Svc: svc}
}

type tagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// List GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Svc.GetAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{ID: t.ID, Name: t.Name})
	}
	response.Success(c, http.StatusOK, out, "ok", nil)
}

// Create POST /api/tags (admin only)
func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	tag, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tagResponse{ID: tag.ID, Name: tag.Name}, "tag created", nil)
}

// Delete DELETE /api/tags/:id (admin only)
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "tag deleted", nil)
}
