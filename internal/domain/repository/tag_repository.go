package repository

import (
	"context"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
)

// TagRepository defines the interface for tag persistence.
// Tag names are unique case-insensitively.
type TagRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	GetByName(ctx context.Context, name string) (*entity.Tag, error)
	GetAll(ctx context.Context) ([]*entity.Tag, error)
	Create(ctx context.Context, t *entity.Tag) error
	GetOrCreate(ctx context.Context, name string) (*entity.Tag, error)
	Delete(ctx context.Context, id string) error
}
