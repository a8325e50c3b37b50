package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidProjectTitle = errors.New("project title must not be empty")
	ErrInvalidProjectURL   = errors.New("project github url must not be empty")
)

// Project is a published showcase entry owned by a user.
type Project struct {
	ID          string
	Title       string
	Description string
	GitHubURL   string
	DiscordURL  string
	OwnerID     string
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProject(title, description, gitHubURL, discordURL, ownerID string) (*Project, error) {
	title = strings.TrimSpace(title)
	gitHubURL = strings.TrimSpace(gitHubURL)
	if title == "" {
		return nil, ErrInvalidProjectTitle
	}
	if gitHubURL == "" {
		return nil, ErrInvalidProjectURL
	}
	return &Project{
		Title:       title,
		Description: strings.TrimSpace(description),
		GitHubURL:   gitHubURL,
		DiscordURL:  strings.TrimSpace(discordURL),
		OwnerID:     ownerID,
	}, nil
}

func (p *Project) Update(title, description, gitHubURL, discordURL string) error {
	title = strings.TrimSpace(title)
	gitHubURL = strings.TrimSpace(gitHubURL)
	if title == "" {
		return ErrInvalidProjectTitle
	}
	if gitHubURL == "" {
		return ErrInvalidProjectURL
	}
	p.Title = title
	p.Description = strings.TrimSpace(description)
	p.GitHubURL = gitHubURL
	p.DiscordURL = strings.TrimSpace(discordURL)
	return nil
}
