package repository

import (
	"context"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
)

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetByGitHubURL(ctx context.Context, url string) (*entity.Project, error)
	// List returns a page of projects filtered by an optional title/description
	// substring and an optional tag-name set, plus the total match count.
	List(ctx context.Context, page, size int, search string, tags []string) ([]*entity.Project, int, error)
	ListByOwner(ctx context.Context, ownerID string, page, size int) ([]*entity.Project, int, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error
	IsOwner(ctx context.Context, projectID, userID string) (bool, error)
	// SetTags replaces the project's tag links with the given tag ids.
	SetTags(ctx context.Context, projectID string, tagIDs []string) error
}
