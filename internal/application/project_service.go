package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/devhubhq/devhub-api/internal/domain/entity"
	"github.com/devhubhq/devhub-api/internal/domain/repository"
)

// ProjectService handles the showcase project lifecycle: creation, search,
// updates with ownership checks, and tag assignment.
type ProjectService struct {
	projects repository.ProjectRepository
	tags     repository.TagRepository
	log      *logrus.Logger
}

func NewProjectService(projects repository.ProjectRepository, tags repository.TagRepository, log *logrus.Logger) *ProjectService {
	return &ProjectService{projects: projects, tags: tags, log: log}
}

type ProjectInput struct {
	Title       string
	Description string
	GitHubURL   string
	DiscordURL  string
	Tags        []string
}

// Create publishes a new project for the owner. The GitHub URL must be unique
// across the platform.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in ProjectInput) (*entity.Project, error) {
	project, err := entity.NewProject(in.Title, in.Description, in.GitHubURL, in.DiscordURL, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByGitHubURL(ctx, project.GitHubURL); err == nil {
		return nil, ErrProjectURLTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	if err := s.assignTags(ctx, project, in.Tags); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"project_id": project.ID, "owner_id": ownerID}).Info("project created")
	return project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, page, size int, search string, tags []string) ([]*entity.Project, int, error) {
	return s.projects.List(ctx, page, size, search, tags)
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string, page, size int) ([]*entity.Project, int, error) {
	return s.projects.ListByOwner(ctx, ownerID, page, size)
}

// Update edits a project. Only the owner or an admin may change it, and the
// GitHub URL must stay unique.
func (s *ProjectService) Update(ctx context.Context, actorID string, actorRole entity.Role, projectID string, in ProjectInput) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID && actorRole != entity.RoleAdmin {
		return nil, ErrNotProjectOwner
	}

	if err := project.Update(in.Title, in.Description, in.GitHubURL, in.DiscordURL); err != nil {
		return nil, err
	}

	if existing, err := s.projects.GetByGitHubURL(ctx, project.GitHubURL); err == nil {
		if existing.ID != project.ID {
			return nil, ErrProjectURLTaken
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	if in.Tags != nil {
		if err := s.assignTags(ctx, project, in.Tags); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, actorID string, actorRole entity.Role, projectID string) error {
	if actorRole != entity.RoleAdmin {
		owner, err := s.projects.IsOwner(ctx, projectID, actorID)
		if err != nil {
			return err
		}
		if !owner {
			return ErrNotProjectOwner
		}
	}
	return s.projects.Delete(ctx, projectID)
}

// assignTags resolves tag names (creating missing ones) and replaces the
// project's tag set.
func (s *ProjectService) assignTags(ctx context.Context, project *entity.Project, names []string) error {
	resolved := make([]entity.Tag, 0, len(names))
	ids := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		tag, err := s.tags.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		resolved = append(resolved, *tag)
		ids = append(ids, tag.ID)
	}

	if err := s.projects.SetTags(ctx, project.ID, ids); err != nil {
		return err
	}
	project.Tags = resolved
	return nil
}
