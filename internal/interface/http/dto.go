package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/application"
	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
	"github.com/devhubhq/devhub-api/pkg/response"
)

type userResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	GitHubURL       string    `json:"github_url,omitempty"`
	DiscordURL      string    `json:"discord_url,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	EmailVerified   bool      `json:"email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Role:            string(u.Role),
		GitHubURL:       u.GitHubURL,
		DiscordURL:      u.DiscordURL,
		ProfileImageURL: u.ProfileImageURL,
		EmailVerified:   u.EmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}

func toUserResponses(users []*entity.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTagResponses(tags []entity.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

type projectResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	GitHubURL   string        `json:"github_url"`
	DiscordURL  string        `json:"discord_url,omitempty"`
	OwnerID     string        `json:"owner_id"`
	Tags        []tagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func toProjectResponse(p *entity.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		GitHubURL:   p.GitHubURL,
		DiscordURL:  p.DiscordURL,
		OwnerID:     p.OwnerID,
		Tags:        toTagResponses(p.Tags),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(projects []*entity.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

type commentResponse struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	ProjectID      string    `json:"project_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCommentResponse(c *entity.Comment) commentResponse {
	return commentResponse{
		ID:             c.ID,
		Content:        c.Content,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		ProjectID:      c.ProjectID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCommentResponses(comments []*entity.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

func pageMeta(page, size, total int) map[string]any {
	return map[string]any{"page": page, "size": size, "total": total}
}

func pageParams(c *gin.Context) (page, size int) {
	page = atoiDefault(c.Query("page"), 1)
	size = atoiDefault(c.Query("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// fail maps service and repository errors onto HTTP statuses. Unknown errors
// become opaque 500s so internals never leak to callers.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrEmailNotVerified):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrProjectURLTaken),
		errors.Is(err, application.ErrTagExists),
		errors.Is(err, application.ErrAlreadyVerified):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrRepoNotFound),
		errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden),
		errors.Is(err, application.ErrNotProjectOwner),
		errors.Is(err, application.ErrNotCommentAuthor),
		errors.Is(err, entity.ErrRoleChangeNotAllowed):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidResetToken),
		errors.Is(err, application.ErrGitHubNotLinked),
		errors.Is(err, application.ErrInvalidTagName),
		errors.Is(err, entity.ErrInvalidUsername),
		errors.Is(err, entity.ErrInvalidEmail),
		errors.Is(err, entity.ErrInvalidProjectTitle),
		errors.Is(err, entity.ErrInvalidProjectURL),
		errors.Is(err, entity.ErrInvalidCommentContent):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
