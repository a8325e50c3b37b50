package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/pkg/response"
	"github.com/devhubhq/devhub-api/pkg/validation"
)

type CommentHandler struct {
	Svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{Svc: svc}
}

type commentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// Create POST /api/projects/:id/comments (auth required)
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.Create(c.Request.Context(),
		c.GetString("userID"), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toCommentResponse(comment), "comment posted", nil)
}

// List GET /api/projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	comments, total, err := h.Svc.ListByProject(c.Request.Context(), c.Param("id"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentResponses(comments), "ok", pageMeta(page, size, total))
}

// Update PUT /api/comments/:id (author only)
func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.Update(c.Request.Context(),
		c.GetString("userID"), c.Param("id"), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentResponse(comment), "comment updated", nil)
}

// Delete DELETE /api/comments/:id (author, project owner, or admin)
func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(),
		c.GetString("userID"), entity.ParseRole(c.GetString("userRole")), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
