package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*entity.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*entity.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("comment-%d", r.seq)
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByProject(_ context.Context, projectID string, page, size int) ([]*entity.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.comments {
		if c.ProjectID == projectID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

var _ repository.CommentRepository = (*fakeCommentRepo)(nil)

func newTestComments(t *testing.T) (*CommentService, *fakeProjectRepo, *entity.Project) {
	t.Helper()
	projects := newFakeProjectRepo()
	comments := newFakeCommentRepo()
	svc := NewCommentService(comments, projects)

	project, err := entity.NewProject("DevHub", "", "https://github.com/alice/devhub", "", "owner-1")
	require.NoError(t, err)
	require.NoError(t, projects.Create(context.Background(), project))
	return svc, projects, project
}

func TestCommentCreate_RequiresExistingProject(t *testing.T) {
	svc, _, project := newTestComments(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, "author-1", project.ID, "nice work")
	require.NoError(t, err)
	assert.Equal(t, "nice work", c.Content)

	_, err = svc.Create(ctx, "author-1", "missing-project", "hello")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Create(ctx, "author-1", project.ID, "   ")
	assert.ErrorIs(t, err, entity.ErrInvalidCommentContent)
}

func TestCommentUpdate_AuthorOnly(t *testing.T) {
	svc, _, project := newTestComments(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, "author-1", project.ID, "first draft")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "someone-else", c.ID, "edited")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := svc.Update(ctx, "author-1", c.ID, "final version")
	require.NoError(t, err)
	assert.Equal(t, "final version", updated.Content)
}

func TestCommentDelete_AuthorOwnerOrAdmin(t *testing.T) {
	svc, _, project := newTestComments(t)
	ctx := context.Background()

	mk := func() *entity.Comment {
		c, err := svc.Create(ctx, "author-1", project.ID, "hello")
		require.NoError(t, err)
		return c
	}

	// A stranger may not delete
	c := mk()
	assert.ErrorIs(t, svc.Delete(ctx, "stranger", entity.RoleUser, c.ID), ErrNotCommentAuthor)

	// The author may
	assert.NoError(t, svc.Delete(ctx, "author-1", entity.RoleUser, c.ID))

	// The project owner may
	c = mk()
	assert.NoError(t, svc.Delete(ctx, "owner-1", entity.RoleUser, c.ID))

	// An admin may
	c = mk()
	assert.NoError(t, svc.Delete(ctx, "moderator", entity.RoleAdmin, c.ID))
}
