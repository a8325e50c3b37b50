package repository

import (
	"context"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
)

// CommentRepository defines the interface for comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByProject(ctx context.Context, projectID string, page, size int) ([]*entity.Comment, int, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
