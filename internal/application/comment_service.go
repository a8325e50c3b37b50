package application

import (
	"context"
	"errors"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

var ErrNotCommentAuthor = errors.New("only the comment author can modify it")

// CommentService handles comments attached to projects.
type CommentService struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
}

func NewCommentService(comments repository.CommentRepository, projects repository.ProjectRepository) *CommentService {
	return &CommentService{comments: comments, projects: projects}
}

// Create attaches a comment to an existing project.
func (s *CommentService) Create(ctx context.Context, authorID, projectID, content string) (*entity.Comment, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	comment, err := entity.NewComment(content, authorID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByProject(ctx context.Context, projectID string, page, size int) ([]*entity.Comment, int, error) {
	return s.comments.ListByProject(ctx, projectID, page, size)
}

// Update edits a comment's content. Only the author may edit; admins may not
// rewrite other people's words, they can only delete them.
func (s *CommentService) Update(ctx context.Context, actorID, commentID, content string) (*entity.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}
	if err := comment.UpdateContent(content); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Allowed for the author, the owning project's
// owner, and admins.
func (s *CommentService) Delete(ctx context.Context, actorID string, actorRole entity.Role, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && actorRole != entity.RoleAdmin {
		owner, err := s.projects.IsOwner(ctx, comment.ProjectID, actorID)
		if err != nil {
			return err
		}
		if !owner {
			return ErrNotCommentAuthor
		}
	}
	return s.comments.Delete(ctx, commentID)
}
