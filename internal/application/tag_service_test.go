package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

func TestTagCreate_DuplicateNameIsCaseInsensitive(t *testing.T) {
	tags := newFakeTagRepo()
	svc := NewTagService(tags)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Go")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// The same name in any casing is the same tag.
	_, err = svc.Create(ctx, "go")
	assert.ErrorIs(t, err, ErrTagExists)
	_, err = svc.Create(ctx, "GO")
	assert.ErrorIs(t, err, ErrTagExists)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTagCreate_RejectsBlankName(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())

	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidTagName)
}

func TestTagGetByName_IgnoresCase(t *testing.T) {
	tags := newFakeTagRepo()
	svc := NewTagService(tags)
	ctx := context.Background()

	created, err := svc.Create(ctx, "TypeScript")
	require.NoError(t, err)

	got, err := svc.GetByName(ctx, "typescript")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByName(ctx, "elixir")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
