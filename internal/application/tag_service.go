package application

import (
	"context"
	"errors"
	"strings"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

// TagService lists and administers the tag vocabulary. Creation happens
// implicitly through project tagging; admins can also curate directly.
type TagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) GetAll(ctx context.Context) ([]*entity.Tag, error) {
	return s.tags.GetAll(ctx)
}

func (s *TagService) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *TagService) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	return s.tags.GetByName(ctx, name)
}

// Create adds a tag to the vocabulary. Names are unique case-insensitively.
func (s *TagService) Create(ctx context.Context, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTagName
	}
	if _, err := s.tags.GetByName(ctx, name); err == nil {
		return nil, ErrTagExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	tag := &entity.Tag{Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.tags.Delete(ctx, id)
}
