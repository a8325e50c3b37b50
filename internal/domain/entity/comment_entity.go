package entity

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidCommentContent = errors.New("comment content must not be empty")

// Comment is a user remark attached to a project.
type Comment struct {
	ID             string
	Content        string
	AuthorID       string
	AuthorUsername string
	ProjectID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewComment(content, authorID, projectID string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidCommentContent
	}
	return &Comment{Content: content, AuthorID: authorID, ProjectID: projectID}, nil
}

func (c *Comment) UpdateContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrInvalidCommentContent
	}
	c.Content = content
	return nil
}
