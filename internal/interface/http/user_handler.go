package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/pkg/response"
	"github.com/devhubhq/devhub-api/pkg/validation"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Username   *string `json:"username" binding:"omitempty,username"`
	GitHubURL  *string `json:"github_url" binding:"omitempty,url"`
	DiscordURL *string `json:"discord_url"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=User Admin"`
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "ok", nil)
}

// List GET /api/users (admin only)
func (h *UserHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	users, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponses(users), "ok", pageMeta(page, size, total))
}

// Update PUT /api/users/:id (self or admin)
func (h *UserHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(),
		c.GetString("userID"), entity.ParseRole(c.GetString("userRole")),
		c.Param("id"), application.ProfileUpdate{
			Username:   req.Username,
			GitHubURL:  req.GitHubURL,
			DiscordURL: req.DiscordURL,
		})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "profile updated", nil)
}

// ChangeRole PUT /api/users/:id/role (admin only)
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.ChangeRole(c.Request.Context(),
		c.GetString("userID"), c.Param("id"), entity.ParseRole(req.Role))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "role updated", nil)
}

// UploadAvatar POST /api/users/me/avatar (multipart form, field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	if file.Size > maxAvatarSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "avatar exceeds 5 MiB", nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	user, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"),
		file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(user), "avatar uploaded", nil)
}
